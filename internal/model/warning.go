package model

import "budgetdeck/internal/budgetapi"

// WarningGroup collects the warnings for one account. Retained holds at
// most the display cap in arrival order; TotalSeen counts every event
// for the account, including those beyond the cap.
type WarningGroup struct {
	Account   string
	Retained  []budgetapi.WarningEvent
	TotalSeen int
	HasIssues bool
}
