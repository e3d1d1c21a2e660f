// Package store provides a SQLite-backed snapshot cache of the last
// successful server responses so the dashboard can render offline.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"budgetdeck/internal/budgetapi"
	"budgetdeck/internal/schema"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNoSnapshot indicates the cache holds no entry of the requested kind.
var ErrNoSnapshot = errors.New("store: no snapshot")

const (
	kindAccounts = "accounts"
	kindForecast = "forecast"
)

// Cache stores the most recent fetch of each payload kind.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) save(kind string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s snapshot: %w", kind, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO snapshots (kind, payload, fetched_at) VALUES (?, ?, ?)",
		kind, string(data), now,
	)
	return err
}

func (c *Cache) load(kind string, dst any) (time.Time, error) {
	var payload, fetchedAt string
	err := c.db.QueryRow(
		"SELECT payload, fetched_at FROM snapshots WHERE kind = ?", kind,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return time.Time{}, err
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return time.Time{}, fmt.Errorf("decoding %s snapshot: %w", kind, err)
	}
	at, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing snapshot timestamp: %w", err)
	}
	return at, nil
}

// SaveAccounts replaces the cached account snapshot.
func (c *Cache) SaveAccounts(records []schema.Record) error {
	return c.save(kindAccounts, records)
}

// Accounts returns the cached account snapshot and when it was fetched.
func (c *Cache) Accounts() ([]schema.Record, time.Time, error) {
	var records []schema.Record
	at, err := c.load(kindAccounts, &records)
	if err != nil {
		return nil, time.Time{}, err
	}
	return records, at, nil
}

// SaveForecast replaces the cached forecast snapshot.
func (c *Cache) SaveForecast(resp *budgetapi.ForecastResponse) error {
	return c.save(kindForecast, resp)
}

// Forecast returns the cached forecast snapshot and when it was fetched.
func (c *Cache) Forecast() (*budgetapi.ForecastResponse, time.Time, error) {
	var resp budgetapi.ForecastResponse
	at, err := c.load(kindForecast, &resp)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &resp, at, nil
}
