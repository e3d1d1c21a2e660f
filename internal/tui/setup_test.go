package tui

import (
	"testing"

	"budgetdeck/internal/config"
)

func TestApplySetup(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Service.Token = "old-token"

	ApplySetup(&cfg, SetupValues{
		BaseURL: "  https://money.example.com/  ",
		Token:   "",
		Theme:   "no-such-theme",
	})

	if cfg.Service.BaseURL != "https://money.example.com" {
		t.Errorf("BaseURL = %q", cfg.Service.BaseURL)
	}
	if cfg.Service.Token != "old-token" {
		t.Errorf("blank token should keep the existing one, got %q", cfg.Service.Token)
	}
	// Unknown theme names normalize to the default.
	if cfg.Appearance.Theme != config.DefaultConfig().Appearance.Theme {
		t.Errorf("Theme = %q", cfg.Appearance.Theme)
	}

	ApplySetup(&cfg, SetupValues{BaseURL: "https://other.example.com", Token: "new-token"})
	if cfg.Service.Token != "new-token" {
		t.Errorf("Token = %q", cfg.Service.Token)
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"https://money.example.com", false},
		{"http://localhost:8080", false},
		{"", true},
		{"   ", true},
		{"money.example.com", true},
	}
	for _, tt := range tests {
		err := validateBaseURL(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateBaseURL(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
