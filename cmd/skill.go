package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/practica/internal/skills"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage skills in the local store",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skills (optionally filtered by category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		all, err := s.SkillRepo().List(cmd.Context())
		if err != nil {
			return err
		}

		// Header.
		fmt.Printf("%-24s  %-14s  %8s  %8s  %6s  %5s  %5s  %7s\n",
			"Name", "Category", "Lectures", "Practice", "Videos", "Films", "Talks", "Overall")
		fmt.Println(strings.Repeat("─", 96))

		shown := 0
		for _, sk := range all {
			if category != "" && sk.Category != category {
				continue
			}
			fmt.Printf("%-24s  %-14s  %8s  %8s  %6s  %5s  %5s  %6.0f%%\n",
				truncate(sk.Name, 24), truncate(sk.Category, 14),
				fraction(sk, skills.DimensionLectures),
				fraction(sk, skills.DimensionPracticeHours),
				fraction(sk, skills.DimensionVideos),
				fraction(sk, skills.DimensionFilms),
				fraction(sk, skills.DimensionExpertTalks),
				skills.OverallCompletionPercent(sk))
			shown++
		}

		fmt.Printf("\n%d skills\n", shown)
		return nil
	},
}

var skillAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a skill or replace its counters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		sk := skills.Skill{Name: args[0]}
		sk.ID, _ = f.GetString("id")
		sk.Category, _ = f.GetString("category")
		sk.Lectures, _ = f.GetFloat64("lectures")
		sk.PracticeHours, _ = f.GetFloat64("practice-hours")
		sk.Videos, _ = f.GetFloat64("videos")
		sk.Films, _ = f.GetFloat64("films")
		sk.ExpertTalks, _ = f.GetFloat64("expert-talks")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SkillRepo().Upsert(cmd.Context(), sk); err != nil {
			return err
		}
		fmt.Printf("Saved %s (%.0f%% complete)\n", sk.Name, skills.OverallCompletionPercent(sk))
		return nil
	},
}

var skillLogCmd = &cobra.Command{
	Use:   "log <name> <dimension> <amount>",
	Short: "Record progress on one dimension of a skill",
	Long: "Record progress on one dimension of a skill.\n\n" +
		"Dimensions: lectures, practice_hours, videos, films, expert_talks.",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		dim, err := skills.ParseDimension(args[1])
		if err != nil {
			return err
		}
		amount, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[2], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sk, err := s.SkillRepo().AddProgress(cmd.Context(), args[0], dim, amount)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s: %s (%.0f%%)\n", sk.Name, dim.DisplayName(), fraction(sk, dim), skills.Percent(sk, dim))
		if skills.IsComplete(sk) {
			fmt.Printf("%s is complete.\n", sk.Name)
		}
		return nil
	},
}

var skillImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import skills from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := skills.LoadFile(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SkillRepo().Import(cmd.Context(), file.Skills); err != nil {
			return err
		}
		fmt.Printf("Imported %d skills\n", len(file.Skills))
		if len(file.Categories) > 0 {
			fmt.Println("Note: categories are not stored in the database; set them under categories: in the config file, or use skills.source: file.")
		}
		return nil
	},
}

var skillRemoveCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SkillRepo().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

func fraction(s skills.Skill, d skills.Dimension) string {
	return strconv.FormatFloat(s.Count(d), 'f', -1, 64) + "/" + strconv.FormatFloat(d.Max(), 'f', -1, 64)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	skillListCmd.Flags().String("category", "", "Only list skills in this category")

	skillAddCmd.Flags().String("id", "", "External ID (defaults to the name)")
	skillAddCmd.Flags().StringP("category", "c", "", "Category used when mixing practice")
	skillAddCmd.Flags().Float64("lectures", 0, "Lectures completed (of 10)")
	skillAddCmd.Flags().Float64("practice-hours", 0, "Practice hours (of 20)")
	skillAddCmd.Flags().Float64("videos", 0, "Videos watched (of 5)")
	skillAddCmd.Flags().Float64("films", 0, "Films watched (of 3)")
	skillAddCmd.Flags().Float64("expert-talks", 0, "Expert talks attended (of 5)")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillAddCmd)
	skillCmd.AddCommand(skillLogCmd)
	skillCmd.AddCommand(skillImportCmd)
	skillCmd.AddCommand(skillRemoveCmd)
}
