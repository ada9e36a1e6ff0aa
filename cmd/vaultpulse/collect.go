package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/subcommands"

	"VaultPulse/internal/browser"
	"VaultPulse/internal/extractor"
	"VaultPulse/internal/store"
)

type collectCmd struct {
	configPath string
	dryRun     bool
}

func (*collectCmd) Name() string     { return "collect" }
func (*collectCmd) Synopsis() string { return "scrape the vault dashboard and commit today's snapshot" }
func (*collectCmd) Usage() string {
	return `collect [-config path] [-dry-run]

  Opens a headless browser on the vault dashboard, extracts the configured
  metrics and commits them to the date partition. Nothing is written when
  any stage fails.
`
}

func (c *collectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "config file path (default configs/config.yaml)")
	f.BoolVar(&c.dryRun, "dry-run", false, "extract and print the snapshot without committing it")
}

func (c *collectCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		log.Printf("[FATAL] config: %v", err)
		return subcommands.ExitFailure
	}

	rec := openRecorder(cfg)
	defer rec.Close()

	log.Printf("[INFO] opening browser session (headless=%v)", *cfg.Browser.Headless)
	session, err := browser.Open(browser.Options{
		Headless:   *cfg.Browser.Headless,
		BinaryPath: cfg.Browser.BinaryPath,
		UserAgent:  cfg.Browser.UserAgent,
		NavTimeout: time.Duration(cfg.Vault.NavTimeoutSeconds) * time.Second,
		Retries:    cfg.Vault.RetryAttempts,
	})
	if err != nil {
		log.Printf("[FATAL] session: %v", err)
		return subcommands.ExitFailure
	}
	defer session.Close()

	log.Printf("[INFO] navigating to %s", cfg.Vault.URL)
	page, err := session.Navigate(cfg.Vault.URL, cfg.Vault.ReadySelector)
	if err != nil {
		log.Printf("[FATAL] navigation: %v", err)
		return subcommands.ExitFailure
	}
	page.DismissBanner(cfg.Vault.CookieSelector)

	snap, err := extractor.FromConfig(cfg.Metrics).Extract(page)
	if err != nil {
		log.Printf("[FATAL] extraction: %v", err)
		return subcommands.ExitFailure
	}
	log.Printf("[INFO] extracted snapshot for %s (balance=%s pnl=%s)",
		snap.Date, fmtPtr(snap.Balance), fmtPtr(snap.TotalPnL))

	if c.dryRun {
		log.Println("[INFO] dry run, snapshot not committed")
		return subcommands.ExitSuccess
	}

	st := store.New(cfg.History.Root)
	if err := st.Write(snap); err != nil {
		log.Printf("[FATAL] storage: %v", err)
		return subcommands.ExitFailure
	}
	log.Printf("[INFO] snapshot committed: %s", st.SnapshotPath(snap.Date))

	if err := rec.RecordSnapshot(snap); err != nil {
		log.Printf("[WARN] recorder: %v", err)
	}
	return subcommands.ExitSuccess
}

func fmtPtr(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
