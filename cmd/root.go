package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"budgetdeck/internal/budgetapi"
	"budgetdeck/internal/config"
	"budgetdeck/internal/schema"
	"budgetdeck/internal/session"
	"budgetdeck/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagBaseURL string
	flagCached  bool
	flagNoCache bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "budgetdeck",
	Short: "Personal finance dashboard CLI",
	Long:  "Edit your account table, sync it with your budget service, and inspect the money forecast.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Override the configured service URL")
	rootCmd.PersistentFlags().BoolVar(&flagCached, "cached", false, "Use the last snapshot without contacting the server")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the snapshot cache entirely")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// effectiveConfig loads the config with the --base-url override applied.
func effectiveConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		progressf("  Config unreadable, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}
	if flagBaseURL != "" {
		cfg.Service.BaseURL = flagBaseURL
	}
	return cfg
}

// newSession resolves the auth token once for this run. A missing
// token prints the sign-in hint exactly once and refuses service calls.
func newSession(cfg config.Config) (*session.Session, error) {
	sess := session.New(budgetapi.StaticToken(config.Token(cfg)), func() {
		fmt.Fprintln(os.Stderr, "  No auth token configured. Run `budgetdeck setup` or set BUDGETDECK_TOKEN.")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sess.Start(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}

// newClient builds the API client for the shared connection settings.
func newClient() (*budgetapi.Client, *session.Session, error) {
	cfg := effectiveConfig()
	if cfg.Service.BaseURL == "" {
		return nil, nil, errors.New("no service URL configured; run `budgetdeck setup`")
	}

	sess, err := newSession(cfg)
	if err != nil {
		return nil, nil, err
	}
	token, err := sess.Token()
	if err != nil {
		return nil, nil, err
	}

	return budgetapi.NewClient(budgetapi.NewHTTPGateway(cfg.Service.BaseURL, token)), sess, nil
}

// openSnapshots opens the snapshot cache honoring --no-cache and the
// offline_fallback setting. Returns nil when caching is disabled.
func openSnapshots(cfg config.Config) *store.Cache {
	if flagNoCache || (!cfg.General.OfflineFallback && !flagCached) {
		return nil
	}
	cache, err := store.Open(config.CachePath())
	if err != nil {
		progressf("  Snapshot cache unavailable: %v\n", err)
		return nil
	}
	return cache
}

// loadAccounts is the shared account fetch path: server first, then
// the snapshot cache when offline fallback applies.
func loadAccounts() ([]schema.Record, error) {
	cfg := effectiveConfig()
	cache := openSnapshots(cfg)
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	if flagCached {
		if cache == nil {
			return nil, errors.New("snapshot cache disabled")
		}
		records, at, err := cache.Accounts()
		if err != nil {
			return nil, fmt.Errorf("no cached accounts: %w", err)
		}
		progressf("  Using snapshot from %s\n", at.Local().Format(time.RFC822))
		return records, nil
	}

	client, _, err := newClient()
	if err != nil {
		return nil, err
	}

	progressf("  Fetching accounts...\n")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := client.FetchAccounts(ctx)
	if err != nil {
		if cache != nil {
			if cached, at, cacheErr := cache.Accounts(); cacheErr == nil {
				progressf("  Server unreachable, using snapshot from %s\n", at.Local().Format(time.RFC822))
				return cached, nil
			}
		}
		return nil, err
	}
	if cache != nil {
		_ = cache.SaveAccounts(records)
	}
	return records, nil
}

// loadForecast is the shared forecast fetch path with the same
// fallback behavior as loadAccounts.
func loadForecast() (*budgetapi.ForecastResponse, error) {
	cfg := effectiveConfig()
	cache := openSnapshots(cfg)
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	if flagCached {
		if cache == nil {
			return nil, errors.New("snapshot cache disabled")
		}
		resp, at, err := cache.Forecast()
		if err != nil {
			return nil, fmt.Errorf("no cached forecast: %w", err)
		}
		progressf("  Using snapshot from %s\n", at.Local().Format(time.RFC822))
		return resp, nil
	}

	client, _, err := newClient()
	if err != nil {
		return nil, err
	}

	progressf("  Fetching forecast...\n")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.FetchForecast(ctx)
	if err != nil {
		if cache != nil {
			if cached, at, cacheErr := cache.Forecast(); cacheErr == nil {
				progressf("  Server unreachable, using snapshot from %s\n", at.Local().Format(time.RFC822))
				return cached, nil
			}
		}
		return nil, err
	}
	if cache != nil {
		_ = cache.SaveForecast(resp)
	}
	return resp, nil
}
