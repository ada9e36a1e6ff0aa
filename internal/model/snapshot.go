package model

import (
	"fmt"
	"time"
)

// DateFormat is the on-disk and on-wire representation of a calendar day.
const DateFormat = "2006-01-02"

// Date is a calendar day with no finer granularity. It is the partition key
// of the snapshot store.
type Date string

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date { return Date(t.Format(DateFormat)) }

// Today returns the current calendar day.
func Today() Date { return NewDate(time.Now()) }

// ParseDate parses a YYYY-MM-DD day string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want %s): %w", s, DateFormat, err)
	}
	return NewDate(t), nil
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	t, _ := time.Parse(DateFormat, string(d))
	return t
}

func (d Date) String() string { return string(d) }

// Before reports whether d is an earlier day than x. ISO day strings order
// lexicographically, so plain string comparison is correct.
func (d Date) Before(x Date) bool { return d < x }

// Snapshot is one daily observation of the vault. Numeric fields are nil when
// the dashboard did not expose the metric that day.
type Snapshot struct {
	Date       Date
	Timestamp  time.Time // capture instant
	Balance    *float64  // vault balance in OX
	TotalPnL   *float64  // cumulative PnL since inception, as reported
	SharePrice *float64
	Volume     *float64
	Fees       *float64
}

// History is the full committed snapshot sequence, strictly increasing by
// date. It is rebuilt from partitions on every run and never mutated.
type History []Snapshot

// First returns the earliest snapshot, or nil for an empty history.
func (h History) First() *Snapshot {
	if len(h) == 0 {
		return nil
	}
	return &h[0]
}

// Last returns the most recent snapshot, or nil for an empty history.
func (h History) Last() *Snapshot {
	if len(h) == 0 {
		return nil
	}
	return &h[len(h)-1]
}

// Float returns a pointer to v, for building snapshots with optional fields.
func Float(v float64) *float64 { return &v }
