package tui

import (
	"errors"
	"strings"

	"budgetdeck/internal/schema"
	"budgetdeck/internal/table"
	"budgetdeck/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// accountsState tracks cursor position and the in-progress cell edit
// on the accounts tab.
type accountsState struct {
	cursor  int
	editRow string // row ID being edited, "" when idle
	col     int
	values  []string
	invalid []bool
	input   textinput.Model
}

func (s accountsState) editing() bool { return s.editRow != "" }

func newCellInput(value string) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 24
	ti.Prompt = ""
	ti.SetValue(value)
	ti.Focus()
	ti.CursorEnd()
	return ti
}

func (a *App) startEdit(rowID string, values []string) tea.Cmd {
	a.acct.editRow = rowID
	a.acct.col = 0
	a.acct.values = values
	a.acct.invalid = make([]bool, len(values))
	a.acct.input = newCellInput(values[0])
	return a.acct.input.Cursor.BlinkCmd()
}

// updateAccountsKeys handles accounts-tab keys outside of edit mode.
// The bool result reports whether the key was consumed.
func (a App) updateAccountsKeys(key string) (tea.Model, tea.Cmd, bool) {
	rows := a.accounts.Rows()

	switch key {
	case "j", "down":
		if a.acct.cursor < len(rows)-1 {
			a.acct.cursor++
		}
		return a, nil, true

	case "k", "up":
		if a.acct.cursor > 0 {
			a.acct.cursor--
		}
		return a, nil, true

	case "a":
		id, err := a.accounts.AddDraft()
		if errors.Is(err, table.ErrDraftPending) {
			a.flash = "finish the pending new row first"
			return a, nil, true
		}
		a.acct.cursor = a.accounts.Len() - 1
		cmd := a.startEdit(id, make([]string, len(a.accounts.Columns())))
		return a, cmd, true

	case "e", "enter":
		if len(rows) == 0 {
			return a, nil, true
		}
		row := rows[a.acct.cursor]
		seed := row.Cells
		if row.State == table.Draft {
			seed = row.DraftCells
		} else {
			if err := a.accounts.BeginEdit(row.ID); err != nil {
				a.flash = "row no longer exists"
				return a, nil, true
			}
		}
		values := make([]string, len(a.accounts.Columns()))
		copy(values, seed)
		cmd := a.startEdit(row.ID, values)
		return a, cmd, true

	case "d":
		if len(rows) == 0 {
			return a, nil, true
		}
		a.accounts.Delete(rows[a.acct.cursor].ID)
		if a.acct.cursor >= a.accounts.Len() && a.acct.cursor > 0 {
			a.acct.cursor--
		}
		a.saved = false
		return a, nil, true

	case "esc":
		if len(rows) > 0 {
			a.accounts.Cancel(rows[a.acct.cursor].ID)
			if a.acct.cursor >= a.accounts.Len() && a.acct.cursor > 0 {
				a.acct.cursor--
			}
		}
		return a, nil, true

	case "s":
		if err := a.sess.BeginPush(); err != nil {
			a.flash = "a save is already in flight"
			return a, nil, true
		}
		records, err := a.accounts.Serialize()
		if err != nil {
			a.sess.EndPush()
			a.flash = "serialize failed: " + err.Error()
			return a, nil, true
		}
		a.saved = false
		return a, a.pushAccountsCmd(records), true
	}

	return a, nil, false
}

// updateAccountsEdit handles keys while a cell edit is active.
func (a App) updateAccountsEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := a.accounts.Columns()

	switch msg.String() {
	case "esc":
		a.accounts.Cancel(a.acct.editRow)
		a.acct = accountsState{cursor: a.acct.cursor}
		if a.acct.cursor >= a.accounts.Len() && a.acct.cursor > 0 {
			a.acct.cursor--
		}
		return a, nil

	case "enter", "tab":
		a.acct.values[a.acct.col] = a.acct.input.Value()
		_ = a.accounts.SetDraftCell(a.acct.editRow, a.acct.col, a.acct.input.Value())

		if a.acct.col < len(cols)-1 {
			a.acct.col++
			a.acct.input = newCellInput(a.acct.values[a.acct.col])
			return a, a.acct.input.Cursor.BlinkCmd()
		}
		return a.commitEdit()

	case "shift+tab":
		a.acct.values[a.acct.col] = a.acct.input.Value()
		if a.acct.col > 0 {
			a.acct.col--
			a.acct.input = newCellInput(a.acct.values[a.acct.col])
			return a, a.acct.input.Cursor.BlinkCmd()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.acct.input, cmd = a.acct.input.Update(msg)
	return a, cmd
}

// commitEdit applies the collected cell values. A rejected commit
// keeps the row editable with the offending cells marked.
func (a App) commitEdit() (tea.Model, tea.Cmd) {
	res, err := a.accounts.Commit(a.acct.editRow, a.acct.values)
	if err != nil {
		a.flash = "commit failed: " + err.Error()
		a.acct = accountsState{cursor: a.acct.cursor}
		return a, nil
	}

	if !res.Committed {
		a.acct.invalid = res.Invalid
		for i, bad := range res.Invalid {
			if bad {
				a.acct.col = i
				break
			}
		}
		a.acct.input = newCellInput(a.acct.values[a.acct.col])
		a.flash = "fill in the highlighted cells"
		return a, a.acct.input.Cursor.BlinkCmd()
	}

	a.acct = accountsState{cursor: a.acct.cursor}
	a.saved = false
	return a, nil
}

// renderAccountsTab renders the editable accounts table.
func (a App) renderAccountsTab(cw int) string {
	t := theme.Active
	cols := a.accounts.Columns()
	rows := a.accounts.Rows()

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	draftStyle := lipgloss.NewStyle().Foreground(t.Yellow)
	invalidStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	widths := columnWidths(cols, rows, cw)

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(dimStyle.Render("  "))
	for i, col := range cols {
		b.WriteString(headerStyle.Render(" " + padTo(col, widths[i])))
	}
	b.WriteString("\n")

	for ri, row := range rows {
		marker := "  "
		if ri == a.acct.cursor {
			marker = lipgloss.NewStyle().Foreground(t.Accent).Render("▸ ")
		}
		b.WriteString("  ")
		b.WriteString(marker)

		editingRow := a.acct.editing() && row.ID == a.acct.editRow

		for ci := range cols {
			var cell string
			switch {
			case editingRow && ci == a.acct.col:
				cell = " " + a.acct.input.View()
			case editingRow:
				cell = " " + padTo(truncStr(a.acct.values[ci], widths[ci]), widths[ci])
				if ci < len(a.acct.invalid) && a.acct.invalid[ci] {
					cell = invalidStyle.Render(cell)
				} else {
					cell = draftStyle.Render(cell)
				}
			default:
				val := ""
				if row.State != table.Display && ci < len(row.DraftCells) {
					val = row.DraftCells[ci]
				} else if ci < len(row.Cells) {
					val = row.Cells[ci]
				}
				text := " " + padTo(truncStr(val, widths[ci]), widths[ci])
				style := cellStyle
				if ri == a.acct.cursor {
					style = selectedStyle
				}
				if row.State != table.Display {
					style = draftStyle
				}
				if ci < len(row.Invalid) && row.Invalid[ci] {
					style = invalidStyle
				}
				cell = style.Render(text)
			}
			b.WriteString(cell)
		}

		if row.State != table.Display && !editingRow {
			b.WriteString(dimStyle.Render("  " + strings.ToLower(row.State.String())))
		}
		b.WriteString("\n")
	}

	if len(rows) == 0 {
		b.WriteString("\n  ")
		b.WriteString(dimStyle.Render("no accounts yet, press [a] to add one"))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	if a.acct.editing() {
		b.WriteString(dimStyle.Render("[enter]next/commit  [tab]next cell  [esc]cancel"))
	} else {
		b.WriteString(dimStyle.Render("[a]dd  [e]dit  [d]elete  [s]ave  [r]efresh"))
	}
	b.WriteString("\n")

	return b.String()
}

// columnWidths sizes each column to its widest cell, clamped so the
// fixed six columns fit the content width.
func columnWidths(cols schema.Columns, rows []table.Row, cw int) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range rows {
		for i, cell := range row.Cells {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	budget := (cw - 8) / len(cols)
	if budget < 8 {
		budget = 8
	}
	for i := range widths {
		if widths[i] > budget {
			widths[i] = budget
		}
	}
	return widths
}
