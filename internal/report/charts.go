package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"VaultPulse/internal/model"
)

var (
	colorPnL      = drawing.Color{R: 30, G: 90, B: 200, A: 255}
	colorDaily    = drawing.Color{R: 30, G: 150, B: 80, A: 255}
	colorDrawdown = drawing.Color{R: 200, G: 40, B: 40, A: 255}
)

// series extracts a (time, value) series from records, skipping nil values.
func series(recs []model.Record, pick func(model.Record) *float64) ([]time.Time, []float64) {
	var xs []time.Time
	var ys []float64
	for _, r := range recs {
		if v := pick(r); v != nil {
			xs = append(xs, r.Date.Time())
			ys = append(ys, *v)
		}
	}
	return xs, ys
}

// renderLine renders one time series as an inline SVG. Fewer than two points
// yields an empty chart slot rather than an error.
func renderLine(name string, xs []time.Time, ys []float64, color drawing.Color, percent bool) (template.HTML, error) {
	if len(xs) < 2 {
		return "", nil
	}
	yAxis := chart.YAxis{}
	if percent {
		yAxis.ValueFormatter = chart.PercentValueFormatter
	}
	graph := chart.Chart{
		Width:  1200,
		Height: 420,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: yAxis,
		Series: []chart.Series{
			chart.TimeSeries{
				Name: name,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
					FillColor:   color.WithAlpha(40),
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render chart %q: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func cumulativePnLChart(recs []model.Record) (template.HTML, error) {
	xs, ys := series(recs, func(r model.Record) *float64 { return r.CumulativePnL })
	return renderLine("Cumulative PnL (OX)", xs, ys, colorPnL, false)
}

func dailyPnLChart(recs []model.Record) (template.HTML, error) {
	xs, ys := series(recs, func(r model.Record) *float64 { return r.DailyPnL })
	return renderLine("Daily PnL (OX)", xs, ys, colorDaily, false)
}

func drawdownChart(recs []model.Record) (template.HTML, error) {
	xs, ys := series(recs, func(r model.Record) *float64 { return r.Drawdown })
	return renderLine("Drawdown from peak", xs, ys, colorDrawdown, true)
}
