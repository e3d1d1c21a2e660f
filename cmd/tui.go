package cmd

import (
	"errors"
	"fmt"

	"budgetdeck/internal/config"
	"budgetdeck/internal/session"
	"budgetdeck/internal/tui"
	"budgetdeck/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so styling produces ANSI codes even when
	// the terminal is misdetected.
	lipgloss.SetColorProfile(termenv.TrueColor)

	// A signed-out or unconfigured state still launches: the app shows
	// the first-run form instead of data.
	client, sess, err := newClient()
	if err != nil {
		if errors.Is(err, session.ErrSignedOut) || !config.Exists() {
			client, sess = nil, nil
		} else {
			return err
		}
	}

	app := tui.NewApp(client, sess)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
