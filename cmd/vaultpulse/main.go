package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"

	"VaultPulse/internal/config"
	"VaultPulse/internal/recorder"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&collectCmd{}, "pipeline")
	subcommands.Register(&analyzeCmd{}, "pipeline")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

// loadConfig resolves the config path (flag, then CONFIG_PATH, then default)
// and validates the result.
func loadConfig(flagPath string) (*config.Config, error) {
	path := flagPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openRecorder returns the SQLite recorder when configured, falling back to
// noop so recording problems never block the pipeline.
func openRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	r, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return r
}
