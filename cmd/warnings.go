package cmd

import (
	"errors"
	"fmt"

	"budgetdeck/internal/cli"
	"budgetdeck/internal/pipeline"

	"github.com/spf13/cobra"
)

var warningsCmd = &cobra.Command{
	Use:   "warnings",
	Short: "Show projected money warnings per account",
	RunE:  runWarnings,
}

func init() {
	rootCmd.AddCommand(warningsCmd)
}

func runWarnings(_ *cobra.Command, _ []string) error {
	resp, err := loadForecast()
	if err != nil {
		return err
	}

	view, err := pipeline.Aggregate(resp.ForecastData)
	if errors.Is(err, pipeline.ErrEmptyForecast) {
		fmt.Println("  No forecast data, so no warnings to triage.")
		return nil
	}
	if err != nil {
		return err
	}

	groups := pipeline.Triage(resp.MoneyWarningData, view.Accounts)

	fmt.Println()
	fmt.Print(cli.RenderWarnings(groups))
	fmt.Println()
	return nil
}
