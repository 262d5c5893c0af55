package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerpath/internal/matching"
	"github.com/jonathan/careerpath/internal/report"
	"github.com/jonathan/careerpath/internal/views"
)

var matchInterests []string

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match interests to careers",
	Long: `Score the career catalog against a set of interests and print the best matches.
Run "careerpath interests" for the accepted labels.`,
	RunE: runMatch,
}

var interestsCmd = &cobra.Command{
	Use:   "interests",
	Short: "List the selectable interests",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		for _, in := range a.catalog.Interests() {
			fmt.Fprintln(cmd.OutOrStdout(), in)
		}
		return nil
	},
}

var careersCmd = &cobra.Command{
	Use:   "careers [id]",
	Short: "List career paths, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		p := report.NewPrinter(cmd.OutOrStdout())
		if len(args) == 0 {
			p.PrintCareers(a.catalog.Paths())
			return nil
		}
		p.PrintCareer(views.CareerDetail(a.catalog, args[0]))
		return nil
	},
}

var learnCmd = &cobra.Command{
	Use:   "learn <id>",
	Short: "Show the learning path for a career",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		report.NewPrinter(cmd.OutOrStdout()).PrintLearning(views.LearningPath(a.catalog, args[0]))
		return nil
	},
}

func init() {
	matchCmd.Flags().StringArrayVarP(&matchInterests, "interest", "i", nil, "Interest label (repeatable)")
	rootCmd.AddCommand(matchCmd, interestsCmd, careersCmd, learnCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	selected := append(append([]string(nil), matchInterests...), args...)
	if len(selected) == 0 {
		return fmt.Errorf("at least one --interest is required")
	}
	for _, in := range selected {
		if !a.catalog.IsInterest(in) {
			return fmt.Errorf("unknown interest %q", in)
		}
	}

	matches := matching.NewScorer(a.catalog.Careers()).Match(selected)
	report.NewPrinter(cmd.OutOrStdout()).PrintMatches(matches)
	return nil
}
