package recorder

import (
	"time"

	"VaultPulse/internal/model"
)

// AnalysisEvent describes one analyze run.
type AnalysisEvent struct {
	RanAt         time.Time
	Snapshots     int
	Skipped       int
	LatestDate    model.Date
	CumulativePnL *float64
	ReportPath    string
}

// Recorder mirrors pipeline activity into a queryable side store. The
// partition directory stays the source of truth; recorder failures are
// logged by callers, never fatal.
type Recorder interface {
	RecordSnapshot(snap *model.Snapshot) error
	RecordAnalysis(evt *AnalysisEvent) error
	Close() error
}
