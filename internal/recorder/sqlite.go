package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"VaultPulse/internal/model"
)

// SQLiteRecorder persists pipeline activity to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc readers don't block the pipeline's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			date        TEXT PRIMARY KEY,
			captured_at INTEGER NOT NULL,
			balance     REAL,
			total_pnl   REAL,
			share_price REAL,
			volume      REAL,
			fees        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_captured ON snapshots(captured_at)`,

		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			snapshots      INTEGER,
			skipped        INTEGER,
			latest_date    TEXT,
			cumulative_pnl REAL,
			report_path    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_ts ON analysis_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSnapshot mirrors a committed snapshot. Keyed by date so a same-day
// rerun replaces the earlier row, matching the store's overwrite semantics.
func (r *SQLiteRecorder) RecordSnapshot(snap *model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR REPLACE INTO snapshots
		(date, captured_at, balance, total_pnl, share_price, volume, fees)
		VALUES (?,?,?,?,?,?,?)`,
		snap.Date.String(), snap.Timestamp.Unix(),
		nullable(snap.Balance), nullable(snap.TotalPnL), nullable(snap.SharePrice),
		nullable(snap.Volume), nullable(snap.Fees),
	)
	return err
}

func (r *SQLiteRecorder) RecordAnalysis(evt *AnalysisEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO analysis_runs
		(timestamp, snapshots, skipped, latest_date, cumulative_pnl, report_path)
		VALUES (?,?,?,?,?,?)`,
		evt.RanAt.Unix(), evt.Snapshots, evt.Skipped,
		evt.LatestDate.String(), nullable(evt.CumulativePnL), evt.ReportPath,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
