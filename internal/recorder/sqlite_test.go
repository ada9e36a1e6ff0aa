package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"VaultPulse/internal/model"
)

func TestSQLiteRecorder_SnapshotReplacedOnRerun(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "pulse.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	d, _ := model.ParseDate("2025-03-14")
	first := &model.Snapshot{Date: d, Timestamp: time.Now(), Balance: model.Float(100)}
	second := &model.Snapshot{Date: d, Timestamp: time.Now(), Balance: model.Float(200)}
	if err := r.RecordSnapshot(first); err != nil {
		t.Fatal(err)
	}
	if err := r.RecordSnapshot(second); err != nil {
		t.Fatal(err)
	}

	var count int
	var balance float64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected one row per date, got %d", count)
	}
	if err := r.db.QueryRow("SELECT balance FROM snapshots WHERE date = ?", d.String()).Scan(&balance); err != nil {
		t.Fatal(err)
	}
	if balance != 200 {
		t.Errorf("expected second write to win, balance = %v", balance)
	}
}

func TestSQLiteRecorder_Analysis(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "pulse.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	d, _ := model.ParseDate("2025-03-14")
	evt := &AnalysisEvent{
		RanAt:      time.Now(),
		Snapshots:  9,
		Skipped:    1,
		LatestDate: d,
		ReportPath: "data/2025-03-14/report.html",
	}
	if err := r.RecordAnalysis(evt); err != nil {
		t.Fatal(err)
	}

	var skipped int
	if err := r.db.QueryRow("SELECT skipped FROM analysis_runs").Scan(&skipped); err != nil {
		t.Fatal(err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d", skipped)
	}
}
