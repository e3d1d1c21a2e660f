package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all budgetdeck configuration.
type Config struct {
	Service    ServiceConfig    `toml:"service"`
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// ServiceConfig holds the remote budgeting service settings.
type ServiceConfig struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// OfflineFallback renders the cached snapshot when the service is
	// unreachable instead of failing the command.
	OfflineFallback bool `toml:"offline_fallback"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			OfflineFallback: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetdeck")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetdeck")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CachePath returns where the offline snapshot database lives.
func CachePath() string {
	return filepath.Join(Dir(), "snapshot.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk. User-only permissions: the file may
// hold a token.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Token returns the auth token from the environment or config, in that
// order. Blank means signed out.
func Token(cfg Config) string {
	if tok := os.Getenv("BUDGETDECK_TOKEN"); tok != "" {
		return tok
	}
	return cfg.Service.Token
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
