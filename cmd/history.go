package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/practica/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent recommendations and practice blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		limit, _ := cmd.Flags().GetInt("blocks")
		if days < 1 {
			return fmt.Errorf("--days must be at least 1, got %d", days)
		}

		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		since := time.Now().AddDate(0, 0, -days)
		printEntries("Daily recommendations", d.daily.EntriesSince(since))
		fmt.Println()
		printEntries("Interleaved picks", d.mix.EntriesSince(since))
		fmt.Println()

		blocks, err := d.store.BlockRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query blocks: %w", err)
		}
		fmt.Println("Practice blocks")
		fmt.Println(strings.Repeat("─", 72))
		if len(blocks) == 0 {
			fmt.Println("(none)")
			return nil
		}
		for _, b := range blocks {
			names := make([]string, len(b.Items))
			for i, it := range b.Items {
				names[i] = fmt.Sprintf("%s/%s %dm", it.SkillName, it.Dimension.DisplayName(), it.Minutes)
			}
			fmt.Printf("%-16s  %4d min  %s\n",
				b.CreatedAt.Local().Format("2006-01-02 15:04"), b.TotalMinutes, strings.Join(names, ", "))
		}
		return nil
	},
}

func printEntries(title string, entries []history.Entry) {
	fmt.Println(title)
	fmt.Println(strings.Repeat("─", 72))
	if len(entries) == 0 {
		fmt.Println("(none)")
		return
	}
	fmt.Printf("%-16s  %-11s  %-28s  %s\n", "Time", "Date", "Skill", "Dimension")
	for _, e := range entries {
		fmt.Printf("%-16s  %-11s  %-28s  %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			e.CalendarDate,
			truncate(e.SkillName, 28),
			e.Dimension.DisplayName())
	}
}

func init() {
	historyCmd.Flags().IntP("days", "d", 7, "How many days back to show")
	historyCmd.Flags().Int("blocks", 10, "Maximum number of practice blocks to show")
}
