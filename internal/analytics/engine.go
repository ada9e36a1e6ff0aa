// Package analytics derives performance series from the snapshot history.
// Everything here is pure: identical input always yields identical output.
package analytics

import (
	"math"
	"sort"

	"VaultPulse/internal/model"
)

// Compute derives the per-date record sequence from an ordered history.
// A history of length 0 or 1 yields an empty or single-point sequence; a
// zero or missing denominator yields a nil period return, never a crash and
// never a silent zero.
func Compute(h model.History) []model.Record {
	recs := make([]model.Record, 0, len(h))

	var prevValue *float64
	var prevPnL *float64
	started := false
	growth := 1.0 // cumulative growth factor since first valid observation
	peak := 1.0

	for _, snap := range h {
		rec := model.Record{Date: snap.Date, CumulativePnL: snap.TotalPnL}

		value := valuationBasis(&snap)
		rec.Value = value

		if snap.TotalPnL != nil && prevPnL != nil {
			d := *snap.TotalPnL - *prevPnL
			rec.DailyPnL = &d
		}
		if snap.TotalPnL != nil {
			prevPnL = snap.TotalPnL
		}

		if value != nil {
			switch {
			case !started:
				started = true
			case prevValue != nil && *prevValue != 0:
				r := *value / *prevValue - 1
				rec.PeriodReturn = &r
				growth *= 1 + r
				if growth > peak {
					peak = growth
				}
			}
			// prior value of zero: the period return stays nil and the
			// cumulative level carries over unchanged.
			prevValue = value
		}

		if started {
			cr := growth - 1
			rec.CumulativeReturn = &cr
			dd := (peak - growth) / peak
			rec.Drawdown = &dd
		}

		rec.RollingVol7 = rollingVol(recs, rec.PeriodReturn, 7)
		recs = append(recs, rec)
	}
	return recs
}

// valuationBasis prefers the share price and falls back to the balance.
func valuationBasis(snap *model.Snapshot) *float64 {
	if snap.SharePrice != nil {
		return snap.SharePrice
	}
	return snap.Balance
}

// rollingVol computes the sample standard deviation of the defined period
// returns within the trailing window (previous records plus the current
// return). Needs at least two defined returns.
func rollingVol(prev []model.Record, current *float64, window int) *float64 {
	var sample []float64
	start := len(prev) - (window - 1)
	if start < 0 {
		start = 0
	}
	for _, r := range prev[start:] {
		if r.PeriodReturn != nil {
			sample = append(sample, *r.PeriodReturn)
		}
	}
	if current != nil {
		sample = append(sample, *current)
	}
	if len(sample) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range sample {
		mean += v
	}
	mean /= float64(len(sample))
	variance := 0.0
	for _, v := range sample {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(sample) - 1)
	sd := math.Sqrt(variance)
	return &sd
}

// Summarize condenses the record sequence and latest snapshot into the
// report header figures. Returns nil for an empty sequence.
func Summarize(h model.History, recs []model.Record) *model.Summary {
	if len(recs) == 0 {
		return nil
	}
	sum := &model.Summary{
		Inception: recs[0].Date,
		Latest:    recs[len(recs)-1].Date,
		TotalDays: len(recs),
	}
	if last := h.Last(); last != nil {
		sum.LatestBalance = last.Balance
	}

	var pnls []float64
	for _, r := range recs {
		if r.CumulativePnL != nil {
			pnls = append(pnls, *r.CumulativePnL)
			switch {
			case *r.CumulativePnL > 0:
				sum.PositiveDays++
			case *r.CumulativePnL < 0:
				sum.NegativeDays++
			}
			sum.LatestPnL = r.CumulativePnL
		}
		if r.CumulativeReturn != nil {
			sum.LatestReturn = r.CumulativeReturn
		}
		if r.Drawdown != nil && (sum.MaxDrawdown == nil || *r.Drawdown > *sum.MaxDrawdown) {
			sum.MaxDrawdown = r.Drawdown
		}
	}

	if len(pnls) > 0 {
		sorted := append([]float64(nil), pnls...)
		sort.Float64s(sorted)
		sum.MinCumulativePnL = &sorted[0]
		sum.MaxCumulativePnL = &sorted[len(sorted)-1]
		median := sorted[len(sorted)/2]
		if len(sorted)%2 == 0 {
			median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
		}
		sum.MedianPnL = &median
	}
	return sum
}
