// Package report turns the derived series into a self-contained HTML
// artifact: inline styles, inline SVG charts, no external scripts.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"VaultPulse/internal/model"
)

// Meta carries run-level context into the artifact.
type Meta struct {
	GeneratedAt time.Time
	Date        model.Date
	VaultURL    string
	SkippedDays int
	TableDays   int // newest rows shown in the detail table
}

type chartSection struct {
	Title string
	SVG   template.HTML
}

type tableRow struct {
	Date         string
	DailyPnL     string
	DailyClass   string
	CumPnL       string
	CumClass     string
	PeriodReturn string
	Drawdown     string
}

type pageData struct {
	Title        string
	Meta         Meta
	GeneratedOn  string
	Insufficient bool
	DataPoints   int
	Headline     string
	Stats        [][2]string
	Charts       []chartSection
	Rows         []tableRow
}

// Render produces the report artifact. An empty or single-point sequence
// still yields a valid document carrying an explicit insufficient-data note.
func Render(recs []model.Record, sum *model.Summary, meta Meta) ([]byte, error) {
	data := pageData{
		Title:       "OX.FUN LP Vault Performance Report",
		Meta:        meta,
		GeneratedOn: meta.Date.String(),
		DataPoints:  len(recs),
	}

	if len(recs) < 2 || sum == nil {
		data.Insufficient = true
		return execute(data)
	}

	days := int(meta.GeneratedAt.Sub(sum.Inception.Time()).Hours() / 24)
	data.Headline = fmt.Sprintf("%s cumulative PnL since inception %s (%d days ago)",
		shortOX(sum.LatestPnL), sum.Inception, days)

	data.Stats = [][2]string{
		{"Latest balance", longOX(sum.LatestBalance)},
		{"Cumulative PnL", longOX(sum.LatestPnL)},
		{"Cumulative return", percent(sum.LatestReturn)},
		{"Max drawdown", percent(sum.MaxDrawdown)},
		{"Max / min / median cumulative PnL", fmt.Sprintf("%s / %s / %s",
			shortOX(sum.MaxCumulativePnL), shortOX(sum.MinCumulativePnL), shortOX(sum.MedianPnL))},
		{"Days positive / negative", fmt.Sprintf("%d (%.1f%%) / %d (%.1f%%)",
			sum.PositiveDays, pct(sum.PositiveDays, sum.TotalDays),
			sum.NegativeDays, pct(sum.NegativeDays, sum.TotalDays))},
	}
	if meta.SkippedDays > 0 {
		data.Stats = append(data.Stats, [2]string{"Unreadable days skipped", fmt.Sprintf("%d", meta.SkippedDays)})
	}

	for _, c := range []struct {
		title  string
		render func([]model.Record) (template.HTML, error)
	}{
		{"Cumulative PnL", cumulativePnLChart},
		{"Daily PnL", dailyPnLChart},
		{"Drawdown", drawdownChart},
	} {
		svg, err := c.render(recs)
		if err != nil {
			return nil, err
		}
		if svg != "" {
			data.Charts = append(data.Charts, chartSection{Title: c.title, SVG: svg})
		}
	}

	limit := meta.TableDays
	if limit <= 0 || limit > len(recs) {
		limit = len(recs)
	}
	// Newest first, like the dashboard itself.
	for i := len(recs) - 1; i >= len(recs)-limit; i-- {
		r := recs[i]
		data.Rows = append(data.Rows, tableRow{
			Date:         r.Date.String(),
			DailyPnL:     longOX(r.DailyPnL),
			DailyClass:   signClass(r.DailyPnL),
			CumPnL:       longOX(r.CumulativePnL),
			CumClass:     signClass(r.CumulativePnL),
			PeriodReturn: percent(r.PeriodReturn),
			Drawdown:     percent(r.Drawdown),
		})
	}

	return execute(data)
}

func execute(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// longOX formats an OX amount with full thousands separators.
func longOX(v *float64) string {
	if v == nil {
		return "—"
	}
	return "$OX " + humanize.CommafWithDigits(*v, 2)
}

// shortOX abbreviates large OX amounts the way the dashboard does.
func shortOX(v *float64) string {
	if v == nil {
		return "—"
	}
	sign := ""
	abs := *v
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("%s$OX %.2fm", sign, abs/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%s$OX %.0fk", sign, abs/1e3)
	default:
		return fmt.Sprintf("%s$OX %.0f", sign, abs)
	}
}

func percent(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

func signClass(v *float64) string {
	if v == nil {
		return ""
	}
	if math.Signbit(*v) {
		return "neg"
	}
	return "pos"
}
