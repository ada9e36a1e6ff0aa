// Package store owns the on-disk history: one directory per calendar day,
// holding that day's snapshot and report artifact.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"VaultPulse/internal/model"
)

const (
	snapshotFile = "snapshot.csv"
	reportFile   = "report.html"
)

var columns = []string{"date", "timestamp", "balance", "total_pnl", "share_price", "volume", "fees"}

// Store is a date-partitioned snapshot repository rooted at a directory.
type Store struct {
	root string
}

// New returns a Store rooted at dir. The directory is created on first write.
func New(dir string) *Store { return &Store{root: dir} }

// PartitionDir returns the directory holding the given day's artifacts.
func (s *Store) PartitionDir(d model.Date) string {
	return filepath.Join(s.root, d.String())
}

// SnapshotPath returns the committed snapshot file for the given day.
func (s *Store) SnapshotPath(d model.Date) string {
	return filepath.Join(s.PartitionDir(d), snapshotFile)
}

// ReportPath returns the report artifact location for the given day.
func (s *Store) ReportPath(d model.Date) string {
	return filepath.Join(s.PartitionDir(d), reportFile)
}

// Write commits the snapshot to its date partition, replacing any previous
// commit for that date. The file is staged in the partition directory and
// renamed into place, so readers never observe a partial snapshot.
func (s *Store) Write(snap *model.Snapshot) error {
	if snap.Date == "" {
		return fmt.Errorf("write snapshot: empty date")
	}
	row := []string{
		snap.Date.String(),
		snap.Timestamp.UTC().Format(time.RFC3339),
		formatField(snap.Balance),
		formatField(snap.TotalPnL),
		formatField(snap.SharePrice),
		formatField(snap.Volume),
		formatField(snap.Fees),
	}
	return s.commit(s.PartitionDir(snap.Date), snapshotFile, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(columns); err != nil {
			return err
		}
		if err := w.Write(row); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	})
}

// WriteReport places the rendered artifact in the day's partition with the
// same write-then-rename discipline as snapshots.
func (s *Store) WriteReport(d model.Date, html []byte) error {
	return s.commit(s.PartitionDir(d), reportFile, func(f *os.File) error {
		_, err := f.Write(html)
		return err
	})
}

func (s *Store) commit(dir, name string, fill func(*os.File) error) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if err := fill(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// ListDates enumerates committed partitions in ascending date order. Entries
// that are not date-named directories with a snapshot file are ignored.
func (s *Store) ListDates() ([]model.Date, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list partitions: %w", err)
	}
	var dates []model.Date
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		d, err := model.ParseDate(e.Name())
		if err != nil {
			continue
		}
		if _, err := os.Stat(s.SnapshotPath(d)); err != nil {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// Read parses the committed snapshot for one day.
func (s *Store) Read(d model.Date) (*model.Snapshot, error) {
	f, err := os.Open(s.SnapshotPath(d))
	if err != nil {
		return nil, fmt.Errorf("read partition %s: %w", d, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read partition %s: %w", d, err)
	}
	if len(records) < 2 || len(records[1]) != len(columns) {
		return nil, fmt.Errorf("read partition %s: malformed snapshot", d)
	}
	row := records[1]

	date, err := model.ParseDate(row[0])
	if err != nil {
		return nil, fmt.Errorf("read partition %s: %w", d, err)
	}
	ts, err := time.Parse(time.RFC3339, row[1])
	if err != nil {
		return nil, fmt.Errorf("read partition %s: bad timestamp: %w", d, err)
	}

	snap := &model.Snapshot{Date: date, Timestamp: ts}
	for i, dst := range []**float64{&snap.Balance, &snap.TotalPnL, &snap.SharePrice, &snap.Volume, &snap.Fees} {
		v, err := parseField(row[i+2])
		if err != nil {
			return nil, fmt.Errorf("read partition %s: column %s: %w", d, columns[i+2], err)
		}
		*dst = v
	}
	return snap, nil
}

func formatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseField(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
