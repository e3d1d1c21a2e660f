// Package model defines the derived, display-ready types of the
// dashboard: chartable series and triaged warning groups.
package model

// TotalsPoint is one (date, daily total) entry of the totals series.
type TotalsPoint struct {
	Date  string
	Total float64
}

// SeriesPoint is one day of a single account's series.
type SeriesPoint struct {
	Date         string
	Balance      float64
	Transactions float64
}

// AccountSeries is the per-account projection of the forecast, in
// input (chronological) order. Rebuilt on every forecast fetch, never
// persisted.
type AccountSeries struct {
	Account string
	Points  []SeriesPoint
}

// ForecastView is the full chartable output of one forecast response:
// the totals series plus one series per derived account name.
type ForecastView struct {
	Accounts []string // derived account names, sorted
	Totals   []TotalsPoint
	Series   map[string]AccountSeries
}
