package tui

import (
	"fmt"
	"net/url"
	"strings"

	"budgetdeck/internal/config"
	"budgetdeck/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues collects setup form answers. Zero values fall back to
// whatever the config already holds when applied.
type SetupValues struct {
	BaseURL string
	Token   string
	Theme   string
}

// NewSetupForm builds the setup huh form: service URL, auth token, and
// color theme. Shared by the first-run wizard and the setup command.
func NewSetupForm(vals *SetupValues) *huh.Form {
	if vals.Theme == "" {
		vals.Theme = theme.Active.Name
	}

	themeOptions := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOptions = append(themeOptions, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Service URL").
				Description("Where your budget service is hosted.").
				Placeholder("https://money.example.com").
				Value(&vals.BaseURL).
				Validate(validateBaseURL),
			huh.NewInput().
				Title("Auth token").
				Description("Sent as the Authorization header on every request. Leave blank to keep the current one.").
				EchoMode(huh.EchoModePassword).
				Value(&vals.Token),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions...).
				Value(&vals.Theme),
		),
	)
}

func validateBaseURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("service URL is required")
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("expected a full URL like https://money.example.com")
	}
	return nil
}

// ApplySetup writes the form answers into cfg. A blank token keeps the
// existing one.
func ApplySetup(cfg *config.Config, vals SetupValues) {
	cfg.Service.BaseURL = strings.TrimRight(strings.TrimSpace(vals.BaseURL), "/")
	if tok := strings.TrimSpace(vals.Token); tok != "" {
		cfg.Service.Token = tok
	}
	if vals.Theme != "" {
		cfg.Appearance.Theme = theme.ByName(vals.Theme).Name
	}
}

// saveSetupConfig persists the completed first-run form.
func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()
	ApplySetup(&cfg, a.setupVals)
	theme.SetActive(cfg.Appearance.Theme)
	return config.Save(cfg)
}
