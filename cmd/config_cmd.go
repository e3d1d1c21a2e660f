// Package cmd implements the budgetdeck CLI commands.
package cmd

import (
	"fmt"
	"os"

	"budgetdeck/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Service]")
	if cfg.Service.BaseURL != "" {
		fmt.Printf("    URL:   %s\n", cfg.Service.BaseURL)
	} else {
		fmt.Println("    URL:   not configured")
	}
	if os.Getenv("BUDGETDECK_TOKEN") != "" {
		fmt.Println("    Token: from BUDGETDECK_TOKEN")
	} else if cfg.Service.Token != "" {
		fmt.Printf("    Token: %s\n", maskToken(cfg.Service.Token))
	} else {
		fmt.Println("    Token: not configured")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Offline fallback: %v\n", cfg.General.OfflineFallback)
	fmt.Printf("    Snapshot cache:   %s\n", config.CachePath())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `budgetdeck setup` to reconfigure.")
	return nil
}

func maskToken(tok string) string {
	if len(tok) > 8 {
		return tok[:4] + "..." + tok[len(tok)-2:]
	}
	return "****"
}
