// Package tui provides the interactive Bubble Tea dashboard for budgetdeck.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"budgetdeck/internal/budgetapi"
	"budgetdeck/internal/config"
	"budgetdeck/internal/model"
	"budgetdeck/internal/pipeline"
	"budgetdeck/internal/schema"
	"budgetdeck/internal/session"
	"budgetdeck/internal/store"
	"budgetdeck/internal/table"
	"budgetdeck/internal/tui/components"
	"budgetdeck/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// accountsMsg is sent when the account fetch finishes.
type accountsMsg struct {
	seq     uint64
	records []schema.Record
	cached  bool
	at      time.Time
	err     error
}

// forecastMsg is sent when the forecast fetch finishes. The endpoint
// returns warnings in the same payload, so both arrive together.
type forecastMsg struct {
	seq      uint64
	view     *model.ForecastView
	warnings []model.WarningGroup
	cached   bool
	at       time.Time
	err      error
}

// pushDoneMsg is sent when a save round-trip completes.
type pushDoneMsg struct {
	seq uint64
	err error
}

// App is the root Bubble Tea model.
type App struct {
	client *budgetapi.Client
	sess   *session.Session
	cfg    config.Config

	// Data
	accounts *table.Table
	view     *model.ForecastView
	warnings []model.WarningGroup

	acctLoaded bool
	fcLoaded   bool
	loadErr    error
	provenance string
	saved      bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string

	// Per-tab state
	acct     accountsState
	fc       forecastState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 160
	minContentHeight = 5

	tabAccounts = 0
	tabForecast = 1
	tabWarnings = 2
	tabSettings = 3
)

// loadConfigOrDefault loads config, returning defaults on error so the
// TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(client *budgetapi.Client, sess *session.Session) App {
	cfg := loadConfigOrDefault()
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		client:    client,
		sess:      sess,
		cfg:       cfg,
		needSetup: !config.Exists() || client == nil || sess == nil,
		spinner:   sp,
	}
}

// connect rebuilds the client and session from the saved config. Used
// after the first-run form completes; normal starts wire these up in
// the command layer.
func (a *App) connect() error {
	token := config.Token(a.cfg)
	sess := session.New(budgetapi.StaticToken(token), nil)
	if err := sess.Start(context.Background()); err != nil {
		return err
	}
	tok, err := sess.Token()
	if err != nil {
		return err
	}
	a.sess = sess
	a.client = budgetapi.NewClient(budgetapi.NewHTTPGateway(a.cfg.Service.BaseURL, tok))
	return nil
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needSetup {
		return a.spinner.Tick
	}
	seq := a.sess.Next()
	return tea.Batch(
		a.spinner.Tick,
		a.fetchAccountsCmd(seq),
		a.fetchForecastCmd(seq),
	)
}

func (a App) loaded() bool {
	return a.acctLoaded && a.fcLoaded
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup {
			if a.setupForm == nil {
				a.setupForm = NewSetupForm(&a.setupVals)
				if a.width > 0 {
					a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
				}
				return a, a.setupForm.Init()
			}
			return a.updateSetupForm(msg)
		}

		if !a.loaded() {
			return a, nil
		}

		// Cell editing intercepts all keys
		if a.activeTab == tabAccounts && a.acct.editing() {
			return a.updateAccountsEdit(msg)
		}

		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.flash = ""

		switch a.activeTab {
		case tabAccounts:
			if m, cmd, handled := a.updateAccountsKeys(key); handled {
				return m, cmd
			}
		case tabForecast:
			if m, handled := a.updateForecastKeys(key); handled {
				return m, nil
			}
		case tabSettings:
			if m, cmd, handled := a.updateSettingsKeys(key); handled {
				return m, cmd
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			a.acctLoaded = false
			a.fcLoaded = false
			a.saved = false
			seq := a.sess.Next()
			return a, tea.Batch(a.spinner.Tick, a.fetchAccountsCmd(seq), a.fetchForecastCmd(seq))
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case accountsMsg:
		if !a.sess.Current(msg.seq) {
			return a, nil
		}
		a.acctLoaded = true
		if msg.err != nil {
			a.loadErr = msg.err
			if a.accounts == nil {
				a.accounts, _ = table.New(schema.AccountColumns)
			}
			return a, nil
		}
		a.loadErr = nil
		a.accounts, _ = table.New(schema.AccountColumns)
		a.accounts.Load(msg.records)
		a.provenance = provenance(msg.cached, msg.at)
		if a.acct.cursor >= a.accounts.Len() {
			a.acct.cursor = a.accounts.Len() - 1
		}
		if a.acct.cursor < 0 {
			a.acct.cursor = 0
		}
		return a, nil

	case forecastMsg:
		if !a.sess.Current(msg.seq) {
			return a, nil
		}
		a.fcLoaded = true
		if msg.err != nil {
			a.loadErr = msg.err
			return a, nil
		}
		a.view = msg.view
		a.warnings = msg.warnings
		if a.fc.selected > len(a.view.Accounts) {
			a.fc.selected = 0
		}
		return a, nil

	case pushDoneMsg:
		a.sess.EndPush()
		if !a.sess.Current(msg.seq) {
			return a, nil
		}
		if msg.err != nil {
			a.flash = "save failed: " + msg.err.Error()
			return a, nil
		}
		a.saved = true
		// Account edits move the forecast, so refresh it after a save.
		a.fcLoaded = false
		return a, tea.Batch(a.spinner.Tick, a.fetchForecastCmd(a.sess.Next()))

	case spinner.TickMsg:
		if !a.loaded() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
		a.cfg = loadConfigOrDefault()
		a.needSetup = false
		a.setupForm = nil
		if err := a.connect(); err != nil {
			a.flash = err.Error()
			a.needSetup = true
			return a, nil
		}
		seq := a.sess.Next()
		return a, tea.Batch(a.spinner.Tick, a.fetchAccountsCmd(seq), a.fetchForecastCmd(seq))
	}

	if a.setupForm.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup {
		if a.setupForm != nil {
			return a.setupForm.View()
		}
		return a.viewWelcome()
	}

	if !a.loaded() {
		return a.viewLoading()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  budgetdeck needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewWelcome() string {
	t := theme.Active
	body := lipgloss.NewStyle().Foreground(t.TextPrimary).Render("◈ budgetdeck") +
		lipgloss.NewStyle().Foreground(t.TextMuted).Render("\n\nPress any key to configure the service connection.")
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ budgetdeck"))
	b.WriteString(subtitleStyle.Render(" · Money Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Fetching account data..."))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Blue).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	for _, bind := range []struct{ key, desc string }{
		{"1 2 3 4", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"j k", "Navigate rows"},
	} {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Accounts"))
	b.WriteString("\n")
	for _, bind := range []struct{ key, desc string }{
		{"a", "Add account row"},
		{"e / Enter", "Edit selected row"},
		{"d", "Delete selected row"},
		{"s", "Save changes to server"},
		{"Esc", "Cancel edit / discard draft"},
	} {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("General"))
	b.WriteString("\n")
	for _, bind := range []struct{ key, desc string }{
		{"r", "Refresh from server"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	} {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusRight(), a.sess.Pushing())

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabAccounts:
		content = a.renderAccountsTab(cw)
	case tabForecast:
		content = a.renderForecastTab(cw, contentH)
	case tabWarnings:
		content = a.renderWarningsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) statusRight() string {
	switch {
	case a.flash != "":
		return a.flash
	case a.loadErr != nil:
		return "fetch failed: " + a.loadErr.Error()
	case a.saved:
		return "saved · " + a.provenance
	default:
		return a.provenance
	}
}

func provenance(cached bool, at time.Time) string {
	if cached {
		return "cached " + at.Local().Format("Jan 2 15:04")
	}
	return "fetched " + at.Local().Format("15:04:05")
}

// ─── Data commands ──────────────────────────────────────────────

func (a App) openCache() *store.Cache {
	if !a.cfg.General.OfflineFallback {
		return nil
	}
	c, err := store.Open(config.CachePath())
	if err != nil {
		return nil
	}
	return c
}

// fetchAccountsCmd fetches the account table, falling back to the
// snapshot cache when the server is unreachable.
func (a App) fetchAccountsCmd(seq uint64) tea.Cmd {
	client := a.client
	cache := a.openCache()
	return func() tea.Msg {
		if cache != nil {
			defer func() { _ = cache.Close() }()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		records, err := client.FetchAccounts(ctx)
		if err == nil {
			if cache != nil {
				_ = cache.SaveAccounts(records)
			}
			return accountsMsg{seq: seq, records: records, at: time.Now()}
		}

		if cache != nil {
			if cached, at, cacheErr := cache.Accounts(); cacheErr == nil {
				return accountsMsg{seq: seq, records: cached, cached: true, at: at}
			}
		}
		return accountsMsg{seq: seq, err: err}
	}
}

// fetchForecastCmd fetches and aggregates the forecast plus warnings.
func (a App) fetchForecastCmd(seq uint64) tea.Cmd {
	client := a.client
	cache := a.openCache()
	return func() tea.Msg {
		if cache != nil {
			defer func() { _ = cache.Close() }()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		resp, err := client.FetchForecast(ctx)
		cached := false
		at := time.Now()
		if err != nil {
			if cache == nil {
				return forecastMsg{seq: seq, err: err}
			}
			cachedResp, cachedAt, cacheErr := cache.Forecast()
			if cacheErr != nil {
				return forecastMsg{seq: seq, err: err}
			}
			resp, cached, at = cachedResp, true, cachedAt
		} else if cache != nil {
			_ = cache.SaveForecast(resp)
		}

		view, err := pipeline.Aggregate(resp.ForecastData)
		if err != nil {
			if errors.Is(err, pipeline.ErrEmptyForecast) {
				view = &model.ForecastView{}
			} else {
				return forecastMsg{seq: seq, err: err}
			}
		}
		groups := pipeline.Triage(resp.MoneyWarningData, view.Accounts)
		return forecastMsg{seq: seq, view: view, warnings: groups, cached: cached, at: at}
	}
}

// pushAccountsCmd replaces the server account table with the current
// committed rows.
func (a App) pushAccountsCmd(records []schema.Record) tea.Cmd {
	seq := a.sess.Next()
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return pushDoneMsg{seq: seq, err: client.PushAccounts(ctx, records)}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// padTo left-aligns s in width display cells, measured with lipgloss
// so non-ASCII cell values stay aligned.
func padTo(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
