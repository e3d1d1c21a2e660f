package budgetapi

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Request bodies understood by the budget-handling endpoint. The
// service multiplexes retrieve and place through one POST route.
type accountRequest struct {
	RetrieveOrPlace string          `json:"RetrieveOrPlace"`
	Entity          string          `json:"Entity"`
	AccountData     json.RawMessage `json:"AccountData,omitempty"`
}

type forecastRequest struct {
	Onward map[string]any `json:"Onward"`
}

// ForecastResponse is the payload of the moneytimeseries endpoint.
type ForecastResponse struct {
	ForecastData     []ForecastDay  `json:"forecastData"`
	MoneyWarningData []WarningEvent `json:"moneyWarningData"`
}

// WarningEvent is one projected money warning, tagged with the account
// it concerns. Events arrive unordered across accounts.
type WarningEvent struct {
	Account string `json:"account"`
	Issue   string `json:"issue"`
	Date    string `json:"date"`
	Notes   string `json:"notes"`
}

// ForecastDay is one day of the forecast. The wire shape is a flat
// object: a date, a daily total, and for each account both a balance
// field and a "<account>transactions" count field. Everything besides
// the date lands in Fields keyed by its wire name.
type ForecastDay struct {
	Date     string
	Total    float64
	HasTotal bool
	Fields   map[string]float64
}

const (
	dateField  = "date"
	totalField = "daily_total"

	// TxSuffix is the naming convention for per-account transaction
	// count fields.
	TxSuffix = "transactions"
)

// UnmarshalJSON splits the flat wire object into date, total, and the
// remaining numeric fields. Numeric values arriving as strings are
// accepted; fields that parse as neither are dropped rather than
// failing the whole payload.
func (d *ForecastDay) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Fields = make(map[string]float64, len(raw))
	for key, val := range raw {
		if key == dateField {
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				d.Date = s
			}
			continue
		}
		f, ok := parseNumeric(val)
		if !ok {
			continue
		}
		if key == totalField {
			d.Total = f
			d.HasTotal = true
			continue
		}
		d.Fields[key] = f
	}
	return nil
}

// MarshalJSON re-emits the flat wire object so a round trip through
// the snapshot cache decodes identically.
func (d ForecastDay) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(d.Fields)+2)
	for key, val := range d.Fields {
		flat[key] = val
	}
	if d.Date != "" {
		flat[dateField] = d.Date
	}
	if d.HasTotal {
		flat[totalField] = d.Total
	}
	return json.Marshal(flat)
}

// parseNumeric handles the polymorphic numeric fields: plain JSON
// numbers, and numbers quoted as strings ("100" or "$100").
func parseNumeric(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimPrefix(strings.TrimSpace(s), "$")
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}
