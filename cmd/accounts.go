package cmd

import (
	"fmt"

	"budgetdeck/internal/cli"
	"budgetdeck/internal/schema"

	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Show the account table",
	RunE:  runAccounts,
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}

func runAccounts(_ *cobra.Command, _ []string) error {
	records, err := loadAccounts()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("  No accounts. Run `budgetdeck tui` to add some.")
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderAccounts(records, schema.AccountColumns))
	fmt.Printf("  Net worth: %s\n", cli.NetWorth(records))
	fmt.Println()
	return nil
}
