package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/practica/internal/app"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd)
	},
}

// runDashboard builds dependencies and launches the TUI.
func runDashboard(cmd *cobra.Command) error {
	level := cfg.EnergyLevel()
	if cmd.Flags().Lookup("energy") != nil {
		l, err := energyFlag(cmd)
		if err != nil {
			return err
		}
		level = l
	}

	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(cmd.Context(), app.DashboardOptions{
		Service:         d.service,
		Energy:          level,
		InterleaveCount: cfg.Engine.InterleaveCount,
		BlockMinutes:    cfg.Engine.BlockMinutes,
	})
}
