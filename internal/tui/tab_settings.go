package tui

import (
	"fmt"
	"strconv"
	"strings"

	"budgetdeck/internal/config"
	"budgetdeck/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldBaseURL = iota
	settingsFieldToken
	settingsFieldTheme
	settingsFieldOffline
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) updateSettingsKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return a, nil, true
	case "enter":
		m, cmd := a.settingsStartEdit()
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldBaseURL:
		ti.Placeholder = "https://money.example.com"
		ti.SetValue(cfg.Service.BaseURL)
	case settingsFieldToken:
		ti.Placeholder = "service auth token"
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
		ti.SetValue(cfg.Service.Token)
	case settingsFieldTheme:
		ti.Placeholder = "flexoki-dark, tokyo-night, terminal"
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldOffline:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(cfg.General.OfflineFallback))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave persists the edited field. The token and base URL take
// effect on the next program start; the session resolves its token
// once per lifetime.
func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	value := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldBaseURL:
		cfg.Service.BaseURL = strings.TrimRight(value, "/")
	case settingsFieldToken:
		cfg.Service.Token = value
	case settingsFieldTheme:
		cfg.Appearance.Theme = theme.ByName(value).Name
		theme.SetActive(cfg.Appearance.Theme)
	case settingsFieldOffline:
		b, err := strconv.ParseBool(value)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("expected true or false, got %q", value)
			return
		}
		cfg.General.OfflineFallback = b
	}

	a.settings.saveErr = config.Save(cfg)
	if a.settings.saveErr == nil {
		a.cfg = cfg
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	okStyle := lipgloss.NewStyle().Foreground(t.Green)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	token := "(not set)"
	if cfg.Service.Token != "" {
		token = strings.Repeat("*", 12)
	}

	fields := []struct{ label, value string }{
		{"Service URL", cfg.Service.BaseURL},
		{"Auth token", token},
		{"Theme", cfg.Appearance.Theme},
		{"Offline fallback", strconv.FormatBool(cfg.General.OfflineFallback)},
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, f := range fields {
		marker := "  "
		if i == a.settings.cursor {
			marker = selStyle.Render("▸ ")
		}
		b.WriteString("  ")
		b.WriteString(marker)
		b.WriteString(labelStyle.Render(f.label))

		if a.settings.editing && i == a.settings.cursor {
			b.WriteString(a.settings.input.View())
		} else {
			b.WriteString(valueStyle.Render(f.value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	switch {
	case a.settings.saveErr != nil:
		b.WriteString(errStyle.Render(a.settings.saveErr.Error()))
	case a.settings.saved:
		b.WriteString(okStyle.Render("saved (connection changes apply on restart)"))
	case a.settings.editing:
		b.WriteString(dimStyle.Render("[enter]save  [esc]cancel"))
	default:
		b.WriteString(dimStyle.Render("[j/k]select  [enter]edit"))
	}
	b.WriteString("\n\n  ")
	b.WriteString(dimStyle.Render("config: " + config.Path()))
	b.WriteString("\n")

	return b.String()
}
