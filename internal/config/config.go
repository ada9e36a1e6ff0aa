package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Metric describes how one vault metric is located on the dashboard and how
// strictly its absence is treated.
type Metric struct {
	Name     string `yaml:"name"`     // balance, total_pnl, share_price, volume, fees, date
	Selector string `yaml:"selector"` // CSS selector; empty means locate by label
	Label    string `yaml:"label"`    // stat-card label text for label lookup
	Kind     string `yaml:"kind"`     // currency, percent, number, date
	Critical bool   `yaml:"critical"` // abort the run when missing or unparseable
}

// Config holds all application configuration.
type Config struct {
	Vault struct {
		URL               string `yaml:"url"`
		ReadySelector     string `yaml:"ready_selector"`
		CookieSelector    string `yaml:"cookie_selector"`
		NavTimeoutSeconds int    `yaml:"nav_timeout_seconds"`
		RetryAttempts     int    `yaml:"retry_attempts"`
	} `yaml:"vault"`
	Browser struct {
		Headless   *bool  `yaml:"headless"`
		BinaryPath string `yaml:"binary_path"`
		UserAgent  string `yaml:"user_agent"`
	} `yaml:"browser"`
	Metrics []Metric `yaml:"metrics"`
	History struct {
		Root string `yaml:"root"`
	} `yaml:"history"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Report struct {
		TableDays int `yaml:"table_days"`
	} `yaml:"report"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("VAULT_URL"); v != "" {
		cfg.Vault.URL = v
	}
	if v := os.Getenv("HISTORY_ROOT"); v != "" {
		cfg.History.Root = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		cfg.Browser.BinaryPath = v
	}
	if v := os.Getenv("NAV_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Vault.NavTimeoutSeconds = n
		}
	}

	// Defaults
	if cfg.Vault.URL == "" {
		cfg.Vault.URL = "https://ox.fun/en/vaults/profile/110428"
	}
	if cfg.Vault.ReadySelector == "" {
		cfg.Vault.ReadySelector = "#__next table tbody tr"
	}
	if cfg.Vault.CookieSelector == "" {
		cfg.Vault.CookieSelector = "button.oxfun-btn.oxfun-btn-primary"
	}
	if cfg.Vault.NavTimeoutSeconds == 0 {
		cfg.Vault.NavTimeoutSeconds = 60
	}
	if cfg.Vault.RetryAttempts == 0 {
		cfg.Vault.RetryAttempts = 2
	}
	if cfg.Browser.Headless == nil {
		headless := true
		cfg.Browser.Headless = &headless
	}
	if len(cfg.Metrics) == 0 {
		cfg.Metrics = DefaultMetrics()
	}
	if cfg.History.Root == "" {
		cfg.History.Root = "data"
	}
	if cfg.Report.TableDays == 0 {
		cfg.Report.TableDays = 30
	}

	return cfg, nil
}

// DefaultMetrics returns the locator set for the OX.FUN vault profile page.
// The date comes from the newest history-table row; headline stats are found
// by their card labels.
func DefaultMetrics() []Metric {
	return []Metric{
		{Name: "date", Selector: "#__next table tbody tr:first-child td:first-child", Kind: "date", Critical: true},
		{Name: "balance", Label: "OX Balance", Kind: "currency", Critical: true},
		{Name: "total_pnl", Label: "Total PNL", Kind: "currency"},
		{Name: "share_price", Label: "Share Price", Kind: "currency"},
		{Name: "volume", Label: "24h Volume", Kind: "currency"},
		{Name: "fees", Label: "Fees", Kind: "currency"},
	}
}

// Validate checks that all required fields are set and coherent.
func (c *Config) Validate() error {
	if c.Vault.URL == "" {
		return fmt.Errorf("vault.url is required")
	}
	if c.History.Root == "" {
		return fmt.Errorf("history.root is required")
	}
	if c.Vault.NavTimeoutSeconds <= 0 {
		return fmt.Errorf("vault.nav_timeout_seconds must be positive")
	}
	if c.Vault.RetryAttempts < 0 {
		return fmt.Errorf("vault.retry_attempts must not be negative")
	}
	seen := make(map[string]bool, len(c.Metrics))
	for _, m := range c.Metrics {
		if m.Name == "" {
			return fmt.Errorf("metric without a name")
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate metric %q", m.Name)
		}
		seen[m.Name] = true
		if m.Selector == "" && m.Label == "" {
			return fmt.Errorf("metric %q needs a selector or a label", m.Name)
		}
		switch m.Kind {
		case "currency", "percent", "number", "date":
		default:
			return fmt.Errorf("metric %q has unknown kind %q", m.Name, m.Kind)
		}
	}
	return nil
}
