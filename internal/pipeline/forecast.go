// Package pipeline turns raw forecast responses into grouped,
// display-ready structures: chart series and capped warning groups.
package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"budgetdeck/internal/budgetapi"
	"budgetdeck/internal/model"
)

// ErrEmptyForecast means the response contained no forecast days.
// Consumers must render "no data", not a zero chart.
var ErrEmptyForecast = errors.New("pipeline: forecast response has no days")

// MissingFieldError reports a day record lacking a field for a known
// account. Substituting a default would corrupt the displayed trend, so
// the whole aggregation fails instead.
type MissingFieldError struct {
	Field string
	Date  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("pipeline: day %q is missing field %q", e.Date, e.Field)
}

// AccountNames derives the account-name set from a day record: every
// field except the date, the daily total, and the transaction-count
// fields. The result is sorted for stable rendering.
func AccountNames(day budgetapi.ForecastDay) []string {
	names := make([]string, 0, len(day.Fields))
	for field := range day.Fields {
		if strings.HasSuffix(field, budgetapi.TxSuffix) {
			continue
		}
		names = append(names, field)
	}
	sort.Strings(names)
	return names
}

// Aggregate builds the totals series and one series per account from
// forecast days. The input order is assumed chronological and is
// preserved; nothing is re-sorted. The account set comes from the first
// day and must hold for every day, otherwise a MissingFieldError is
// returned.
func Aggregate(days []budgetapi.ForecastDay) (*model.ForecastView, error) {
	if len(days) == 0 {
		return nil, ErrEmptyForecast
	}

	accounts := AccountNames(days[0])

	view := &model.ForecastView{
		Accounts: accounts,
		Totals:   make([]model.TotalsPoint, 0, len(days)),
		Series:   make(map[string]model.AccountSeries, len(accounts)),
	}

	series := make(map[string][]model.SeriesPoint, len(accounts))
	for _, day := range days {
		if day.Date == "" {
			return nil, &MissingFieldError{Field: "date", Date: day.Date}
		}
		if !day.HasTotal {
			return nil, &MissingFieldError{Field: "daily_total", Date: day.Date}
		}
		view.Totals = append(view.Totals, model.TotalsPoint{Date: day.Date, Total: day.Total})

		for _, name := range accounts {
			balance, ok := day.Fields[name]
			if !ok {
				return nil, &MissingFieldError{Field: name, Date: day.Date}
			}
			txCount, ok := day.Fields[name+budgetapi.TxSuffix]
			if !ok {
				return nil, &MissingFieldError{Field: name + budgetapi.TxSuffix, Date: day.Date}
			}
			series[name] = append(series[name], model.SeriesPoint{
				Date:         day.Date,
				Balance:      balance,
				Transactions: txCount,
			})
		}
	}

	for _, name := range accounts {
		view.Series[name] = model.AccountSeries{Account: name, Points: series[name]}
	}
	return view, nil
}
