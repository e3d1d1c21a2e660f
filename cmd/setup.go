package cmd

import (
	"fmt"

	"budgetdeck/internal/config"
	"budgetdeck/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the service connection",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	vals := tui.SetupValues{
		BaseURL: cfg.Service.BaseURL,
		Theme:   cfg.Appearance.Theme,
	}

	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		return err
	}

	tui.ApplySetup(&cfg, vals)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `budgetdeck setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
