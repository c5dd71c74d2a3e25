package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/practica/internal/app"
	"github.com/abhisek/practica/internal/skills"
	"github.com/abhisek/practica/internal/ui/theme"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show progress bars for every skill",
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")

		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		all, err := d.service.Skills(cmd.Context())
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("No skills yet. Add one with: practica skill add <name> --category <category>")
			return nil
		}

		lipgloss.Println(app.RenderProgress(all, width, 0))

		complete := 0
		for _, s := range all {
			if skills.IsComplete(s) {
				complete++
			}
		}
		lipgloss.Println(theme.Hint.Render(fmt.Sprintf("\n%d skills, %d complete", len(all), complete)))
		return nil
	},
}

func init() {
	statusCmd.Flags().Int("width", 100, "Output width in columns")
}
