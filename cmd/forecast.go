package cmd

import (
	"errors"
	"fmt"

	"budgetdeck/internal/cli"
	"budgetdeck/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagForecastTable bool

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show the balance forecast",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().BoolVar(&flagForecastTable, "table", false, "Print the full per-day table")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	resp, err := loadForecast()
	if err != nil {
		return err
	}

	view, err := pipeline.Aggregate(resp.ForecastData)
	if errors.Is(err, pipeline.ErrEmptyForecast) {
		fmt.Println("  No forecast data.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("  " + cli.RenderTotalsSparkline(view.Totals))
	fmt.Println()

	if flagForecastTable {
		fmt.Print(cli.RenderForecast(view))
		fmt.Println()
		return nil
	}

	for _, acct := range view.Accounts {
		points := view.Series[acct].Points
		first := points[0].Balance
		last := points[len(points)-1].Balance
		fmt.Printf("  %-20s %12s → %12s  (%s)\n",
			acct,
			cli.FormatBalance(first),
			cli.FormatBalance(last),
			cli.FormatDelta(last, first))
	}
	fmt.Println()
	return nil
}
