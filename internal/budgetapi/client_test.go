package budgetapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"budgetdeck/internal/schema"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(NewHTTPGateway(srv.URL, "test-token"))
}

func TestFetchAccountsRequestShape(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`[{"AccountName":"Checking","Balance":100.5,"Type":"CHECKING"}]`))
	})

	records, err := client.FetchAccounts(context.Background())
	if err != nil {
		t.Fatalf("FetchAccounts: %v", err)
	}

	if gotAuth != "test-token" {
		t.Errorf("Authorization = %q, want test-token", gotAuth)
	}
	if gotBody["RetrieveOrPlace"] != "retrieve" || gotBody["Entity"] != "account" {
		t.Errorf("request body = %v, want retrieve/account", gotBody)
	}

	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0]["AccountName"] != "Checking" {
		t.Errorf("AccountName = %q, want Checking", records[0]["AccountName"])
	}
	if records[0]["Balance"] != "100.5" {
		t.Errorf("Balance = %q, want numeric field coerced to 100.5", records[0]["Balance"])
	}
}

func TestPushAccountsFullReplacePayload(t *testing.T) {
	var gotBody struct {
		RetrieveOrPlace string          `json:"RetrieveOrPlace"`
		Entity          string          `json:"Entity"`
		AccountData     []schema.Record `json:"AccountData"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	records := []schema.Record{
		{"AccountName": "Checking", "Balance": "100"},
		{"AccountName": "Visa", "Balance": "-250"},
	}
	if err := client.PushAccounts(context.Background(), records); err != nil {
		t.Fatalf("PushAccounts: %v", err)
	}

	if gotBody.RetrieveOrPlace != "place" || gotBody.Entity != "account" {
		t.Errorf("envelope = %+v, want place/account", gotBody)
	}
	if len(gotBody.AccountData) != 2 {
		t.Fatalf("AccountData rows = %d, want the complete set", len(gotBody.AccountData))
	}
	if gotBody.AccountData[1]["Balance"] != "-250" {
		t.Errorf("row 1 = %v", gotBody.AccountData[1])
	}
}

func TestRequestErrorCarriesUpstreamBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := client.FetchAccounts(context.Background())
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
	if re.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", re.Status)
	}
	if re.Body != "upstream exploded" {
		t.Errorf("Body = %q, want upstream body preserved", re.Body)
	}
}

func TestFetchForecastParsesDaysAndWarnings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"forecastData": [
				{"date":"2026-09-01","daily_total":350,"Checking":100,"Checkingtransactions":2,"Visa":-250,"Visatransactions":"1"}
			],
			"moneyWarningData": [
				{"account":"Visa","issue":"high balance ratio","date":"2026-09-04","notes":"over 20% of limit"}
			]
		}`))
	})

	resp, err := client.FetchForecast(context.Background())
	if err != nil {
		t.Fatalf("FetchForecast: %v", err)
	}

	if len(resp.ForecastData) != 1 {
		t.Fatalf("days = %d, want 1", len(resp.ForecastData))
	}
	day := resp.ForecastData[0]
	if day.Date != "2026-09-01" {
		t.Errorf("Date = %q", day.Date)
	}
	if !day.HasTotal || day.Total != 350 {
		t.Errorf("Total = %v (has=%v), want 350", day.Total, day.HasTotal)
	}
	if day.Fields["Checking"] != 100 || day.Fields["Visa"] != -250 {
		t.Errorf("balances = %v", day.Fields)
	}
	if day.Fields["Visatransactions"] != 1 {
		t.Errorf("string-quoted count not coerced: %v", day.Fields["Visatransactions"])
	}

	if len(resp.MoneyWarningData) != 1 {
		t.Fatalf("warnings = %d, want 1", len(resp.MoneyWarningData))
	}
	if resp.MoneyWarningData[0].Account != "Visa" {
		t.Errorf("warning account = %q", resp.MoneyWarningData[0].Account)
	}
}

func TestStaticToken(t *testing.T) {
	if _, err := StaticToken("").Token(context.Background()); !errors.Is(err, ErrNoToken) {
		t.Fatalf("blank token error = %v, want ErrNoToken", err)
	}
	tok, err := StaticToken("  abc  ").Token(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if tok != "abc" {
		t.Fatalf("token = %q, want trimmed abc", tok)
	}
}
