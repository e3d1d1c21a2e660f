package pipeline

import (
	"budgetdeck/internal/budgetapi"
	"budgetdeck/internal/model"
)

// WarningCap is the maximum number of warnings retained per account for
// display. Events past the cap still count toward TotalSeen.
const WarningCap = 3

// Triage groups warning events by account over the given account
// universe. Every known account gets a group, even with zero events, so
// the panel can render a "no issues" entry for it. Retained events keep
// arrival order and are never removed or reordered once appended.
// Events for accounts outside the universe are dropped, matching the
// panel's behavior of only rendering known accounts.
func Triage(events []budgetapi.WarningEvent, accounts []string) []model.WarningGroup {
	idx := make(map[string]int, len(accounts))
	groups := make([]model.WarningGroup, len(accounts))
	for i, name := range accounts {
		idx[name] = i
		groups[i] = model.WarningGroup{Account: name}
	}

	for _, ev := range events {
		i, known := idx[ev.Account]
		if !known {
			continue
		}
		g := &groups[i]
		g.TotalSeen++
		if len(g.Retained) < WarningCap {
			g.Retained = append(g.Retained, ev)
			g.HasIssues = true
		}
	}
	return groups
}
