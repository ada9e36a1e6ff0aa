// Package history rebuilds the full snapshot time series from committed
// partitions. The result is ephemeral; analytics always start from here.
package history

import (
	"fmt"
	"log"

	"VaultPulse/internal/model"
	"VaultPulse/internal/store"
)

// Loader reads the snapshot store into an ordered History.
type Loader struct {
	store *store.Store
}

func NewLoader(s *store.Store) *Loader { return &Loader{store: s} }

// Load returns every readable snapshot in ascending date order plus the
// number of partitions that had to be skipped. A single corrupt historical
// day is skipped with a warning rather than blocking the whole analysis.
func (l *Loader) Load() (model.History, int, error) {
	dates, err := l.store.ListDates()
	if err != nil {
		return nil, 0, fmt.Errorf("load history: %w", err)
	}

	hist := make(model.History, 0, len(dates))
	skipped := 0
	var prev model.Date
	for _, d := range dates {
		snap, err := l.store.Read(d)
		if err != nil {
			log.Printf("[WARN] skipping unreadable partition %s: %v", d, err)
			skipped++
			continue
		}
		// Partition name is authoritative; a snapshot claiming another date
		// would corrupt ordering downstream.
		if snap.Date != d {
			log.Printf("[WARN] skipping partition %s: snapshot claims date %s", d, snap.Date)
			skipped++
			continue
		}
		if prev != "" && !prev.Before(snap.Date) {
			log.Printf("[WARN] skipping duplicate partition %s", d)
			skipped++
			continue
		}
		prev = snap.Date
		hist = append(hist, *snap)
	}
	return hist, skipped, nil
}
