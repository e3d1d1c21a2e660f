// Package budgetapi provides the client for the remote budgeting
// service: account retrieve/place and the money timeseries forecast.
package budgetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"budgetdeck/internal/schema"
)

const (
	budgetPath   = "/budget-handling"
	forecastPath = "/moneytimeseries"

	requestTimeout = 15 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
)

// RequestError reports a failed service call. Status and Body carry the
// upstream response so the UI can show the service's own message; no
// retry is attempted here.
type RequestError struct {
	Op     string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("budgetapi: %s failed with status %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("budgetapi: %s failed with status %d", e.Op, e.Status)
}

// Gateway posts a JSON body to a service path and returns the raw JSON
// response. The HTTP transport, and any retry policy, live behind this
// interface.
type Gateway interface {
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
}

// HTTPGateway is the standard Gateway over net/http. The auth token is
// injected at construction and immutable for the gateway's lifetime.
type HTTPGateway struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPGateway creates a gateway for the given service base URL and
// resolved auth token.
func NewHTTPGateway(baseURL, token string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
	}
}

// Post implements Gateway.
func (g *HTTPGateway) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("budgetapi: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("budgetapi: creating request: %w", err)
	}
	req.Header.Set("Authorization", g.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("budgetapi: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("budgetapi: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{
			Op:     path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(raw)),
		}
	}
	return raw, nil
}

// Client performs the three logical service calls on top of a Gateway.
type Client struct {
	gw Gateway
}

// NewClient creates a client over the given gateway.
func NewClient(gw Gateway) *Client {
	return &Client{gw: gw}
}

// FetchAccounts retrieves the authoritative account list, in service
// order.
func (c *Client) FetchAccounts(ctx context.Context) ([]schema.Record, error) {
	raw, err := c.gw.Post(ctx, budgetPath, accountRequest{
		RetrieveOrPlace: "retrieve",
		Entity:          "account",
	})
	if err != nil {
		return nil, err
	}

	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("budgetapi: parsing accounts: %w", err)
	}

	records := make([]schema.Record, 0, len(rows))
	for _, row := range rows {
		rec := make(schema.Record, len(row))
		for field, val := range row {
			rec[field] = coerceString(val)
		}
		records = append(records, rec)
	}
	return records, nil
}

// PushAccounts sends the full current account snapshot. Full-replace
// semantics: the service's stored set becomes exactly this list. The
// acknowledgement body is not inspected beyond the status code.
func (c *Client) PushAccounts(ctx context.Context, records []schema.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("budgetapi: encoding accounts: %w", err)
	}

	_, err = c.gw.Post(ctx, budgetPath, accountRequest{
		RetrieveOrPlace: "place",
		Entity:          "account",
		AccountData:     data,
	})
	return err
}

// FetchForecast retrieves the forecast days and money warnings.
func (c *Client) FetchForecast(ctx context.Context) (*ForecastResponse, error) {
	raw, err := c.gw.Post(ctx, forecastPath, forecastRequest{Onward: map[string]any{}})
	if err != nil {
		return nil, err
	}

	var resp ForecastResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("budgetapi: parsing forecast: %w", err)
	}
	return &resp, nil
}

// coerceString renders a JSON scalar as the cell string the table
// expects. The service is loose about numeric vs. string fields.
func coerceString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "true"
		}
		return "false"
	}
	return ""
}
