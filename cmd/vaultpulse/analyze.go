package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/subcommands"

	"VaultPulse/internal/analytics"
	"VaultPulse/internal/history"
	"VaultPulse/internal/model"
	"VaultPulse/internal/recorder"
	"VaultPulse/internal/report"
	"VaultPulse/internal/store"
)

type analyzeCmd struct {
	configPath string
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "recompute analytics from history and write today's report" }
func (*analyzeCmd) Usage() string {
	return `analyze [-config path]

  Rebuilds the full history from committed partitions, recomputes the
  derived series and writes the report artifact into today's partition.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "config file path (default configs/config.yaml)")
}

func (c *analyzeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		log.Printf("[FATAL] config: %v", err)
		return subcommands.ExitFailure
	}

	rec := openRecorder(cfg)
	defer rec.Close()

	st := store.New(cfg.History.Root)
	hist, skipped, err := history.NewLoader(st).Load()
	if err != nil {
		log.Printf("[FATAL] history: %v", err)
		return subcommands.ExitFailure
	}
	if skipped > 0 {
		log.Printf("[WARN] %d unreadable partition(s) skipped", skipped)
	}
	log.Printf("[INFO] loaded %d snapshots", len(hist))

	records := analytics.Compute(hist)
	summary := analytics.Summarize(hist, records)

	now := time.Now()
	today := model.NewDate(now)
	artifact, err := report.Render(records, summary, report.Meta{
		GeneratedAt: now,
		Date:        today,
		VaultURL:    cfg.Vault.URL,
		SkippedDays: skipped,
		TableDays:   cfg.Report.TableDays,
	})
	if err != nil {
		log.Printf("[FATAL] render: %v", err)
		return subcommands.ExitFailure
	}

	if err := st.WriteReport(today, artifact); err != nil {
		log.Printf("[FATAL] storage: %v", err)
		return subcommands.ExitFailure
	}
	log.Printf("[INFO] report written: %s", st.ReportPath(today))

	evt := &recorder.AnalysisEvent{
		RanAt:      now,
		Snapshots:  len(hist),
		Skipped:    skipped,
		LatestDate: today,
		ReportPath: st.ReportPath(today),
	}
	if last := hist.Last(); last != nil {
		evt.LatestDate = last.Date
		evt.CumulativePnL = last.TotalPnL
	}
	if err := rec.RecordAnalysis(evt); err != nil {
		log.Printf("[WARN] recorder: %v", err)
	}
	return subcommands.ExitSuccess
}
