// Package extractor turns a rendered vault dashboard into a typed Snapshot.
package extractor

import (
	"errors"
	"fmt"
	"log"
	"time"

	"VaultPulse/internal/config"
	"VaultPulse/internal/model"
)

var (
	// ErrSelectorNotFound means the metric's locator matched nothing.
	ErrSelectorNotFound = errors.New("selector not found")
	// ErrValueUnparseable means the located text could not be converted.
	ErrValueUnparseable = errors.New("value not parseable")
)

// FieldError ties an extraction failure to the metric it occurred on.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("metric %s: %v", e.Field, e.Err) }
func (e *FieldError) Unwrap() error { return e.Err }

// Metric is one metric to extract: where to find it and how strictly to
// treat its absence.
type Metric struct {
	Name     string
	Kind     string
	Critical bool
	Locator  MetricLocator
}

// Extractor reads the configured metric set off a rendered page.
type Extractor struct {
	metrics []Metric
	now     func() time.Time
}

// New builds an Extractor from explicit metrics.
func New(metrics []Metric) *Extractor {
	return &Extractor{metrics: metrics, now: time.Now}
}

// FromConfig wires the locator strategy per metric: CSS selector when given,
// label lookup otherwise.
func FromConfig(defs []config.Metric) *Extractor {
	metrics := make([]Metric, 0, len(defs))
	for _, d := range defs {
		var loc MetricLocator
		if d.Selector != "" {
			loc = CSSLocator{Selector: d.Selector}
		} else {
			loc = LabelLocator{Label: d.Label}
		}
		metrics = append(metrics, Metric{Name: d.Name, Kind: d.Kind, Critical: d.Critical, Locator: loc})
	}
	return New(metrics)
}

// Extract locates and parses every configured metric. A missing or
// unparseable critical metric aborts with a FieldError and no snapshot; an
// optional one degrades to nil with a warning. If no date metric resolves,
// the capture day is used.
func (e *Extractor) Extract(p Page) (*model.Snapshot, error) {
	now := e.now()
	snap := &model.Snapshot{
		Date:      model.NewDate(now),
		Timestamp: now,
	}

	for _, m := range e.metrics {
		raw, err := m.Locator.Locate(p)
		if err == nil {
			if m.Kind == "date" {
				var d model.Date
				if d, err = parseDay(raw); err == nil {
					snap.Date = d
					continue
				}
			} else {
				var v float64
				if v, err = parseNumber(raw, m.Kind); err == nil {
					e.assign(snap, m.Name, v)
					continue
				}
			}
		}
		if m.Critical {
			return nil, &FieldError{Field: m.Name, Err: err}
		}
		log.Printf("[WARN] optional metric %s unavailable: %v", m.Name, err)
	}
	return snap, nil
}

func (e *Extractor) assign(snap *model.Snapshot, name string, v float64) {
	switch name {
	case "balance":
		snap.Balance = &v
	case "total_pnl":
		snap.TotalPnL = &v
	case "share_price":
		snap.SharePrice = &v
	case "volume":
		snap.Volume = &v
	case "fees":
		snap.Fees = &v
	default:
		log.Printf("[WARN] ignoring unknown metric %q", name)
	}
}
