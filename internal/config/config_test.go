package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load on missing file should use defaults, got %v", err)
	}
	if cfg.Vault.URL == "" {
		t.Error("expected default vault URL")
	}
	if cfg.Vault.RetryAttempts != 2 {
		t.Errorf("expected 2 retry attempts, got %d", cfg.Vault.RetryAttempts)
	}
	if cfg.Browser.Headless == nil || !*cfg.Browser.Headless {
		t.Error("expected headless default true")
	}
	if len(cfg.Metrics) == 0 {
		t.Fatal("expected default metric set")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
vault:
  url: https://example.com/vault
  nav_timeout_seconds: 15
history:
  root: /var/lib/vaultpulse
browser:
  headless: false
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HISTORY_ROOT", "/tmp/override")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Vault.URL != "https://example.com/vault" {
		t.Errorf("url not read from file: %q", cfg.Vault.URL)
	}
	if cfg.Vault.NavTimeoutSeconds != 15 {
		t.Errorf("nav timeout not read from file: %d", cfg.Vault.NavTimeoutSeconds)
	}
	if cfg.History.Root != "/tmp/override" {
		t.Errorf("env override lost: %q", cfg.History.Root)
	}
	if cfg.Browser.Headless == nil || *cfg.Browser.Headless {
		t.Error("explicit headless=false should survive defaulting")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.Vault.URL = "" }},
		{"zero timeout", func(c *Config) { c.Vault.NavTimeoutSeconds = 0 }},
		{"duplicate metric", func(c *Config) { c.Metrics = append(c.Metrics, c.Metrics[0]) }},
		{"metric without locator", func(c *Config) { c.Metrics[1].Selector, c.Metrics[1].Label = "", "" }},
		{"unknown kind", func(c *Config) { c.Metrics[0].Kind = "bogus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
