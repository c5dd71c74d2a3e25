package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/practica/internal/app"
	"github.com/abhisek/practica/internal/energy"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Recommend one skill and dimension to practice today",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := energyFlag(cmd)
		if err != nil {
			return err
		}
		return withService(cmd, func(svc *app.Service) (*app.Result, error) {
			return svc.Today(cmd.Context(), level)
		})
	},
}

var mixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Plan an interleaved session, one skill per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := energyFlag(cmd)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		if !cmd.Flags().Changed("count") {
			count = cfg.Engine.InterleaveCount
		}
		return withService(cmd, func(svc *app.Service) (*app.Result, error) {
			return svc.Mix(cmd.Context(), count, level)
		})
	},
}

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Build a deep-practice block split across three skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := energyFlag(cmd)
		if err != nil {
			return err
		}
		minutes, _ := cmd.Flags().GetInt("minutes")
		if !cmd.Flags().Changed("minutes") {
			minutes = cfg.Engine.BlockMinutes
		}
		if minutes <= 0 {
			return fmt.Errorf("--minutes must be greater than zero, got %d", minutes)
		}
		return withService(cmd, func(svc *app.Service) (*app.Result, error) {
			return svc.Block(cmd.Context(), minutes, level)
		})
	},
}

// withService builds the dependencies, runs fn and prints its text.
func withService(cmd *cobra.Command, fn func(*app.Service) (*app.Result, error)) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := fn(d.service)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}

// energyFlag reads --energy, falling back to energy.level from config.
func energyFlag(cmd *cobra.Command) (energy.Level, error) {
	s, _ := cmd.Flags().GetString("energy")
	if s == "" {
		return cfg.EnergyLevel(), nil
	}
	return energy.Parse(s)
}

func init() {
	for _, c := range []*cobra.Command{todayCmd, mixCmd, blockCmd, dashboardCmd} {
		c.Flags().StringP("energy", "e", "", "Energy level: high, medium or low (default from config)")
	}
	mixCmd.Flags().IntP("count", "n", 3, "Number of categories to mix")
	blockCmd.Flags().IntP("minutes", "m", 90, "Length of the block in minutes")
}
