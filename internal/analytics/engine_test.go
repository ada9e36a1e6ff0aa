package analytics

import (
	"math"
	"testing"
	"time"

	"VaultPulse/internal/model"
)

func histFromPrices(prices ...*float64) model.History {
	h := make(model.History, len(prices))
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range prices {
		h[i] = model.Snapshot{
			Date:       model.NewDate(day.AddDate(0, 0, i)),
			Timestamp:  day.AddDate(0, 0, i),
			SharePrice: p,
		}
	}
	return h
}

func approx(got, want float64) bool { return math.Abs(got-want) < 1e-9 }

func TestCompute_PeriodAndCumulativeReturns(t *testing.T) {
	h := histFromPrices(model.Float(100), model.Float(110), model.Float(99))
	recs := Compute(h)
	if len(recs) != 3 {
		t.Fatalf("got %d records", len(recs))
	}

	if recs[0].PeriodReturn != nil {
		t.Error("first record has no prior, period return must be nil")
	}
	if recs[1].PeriodReturn == nil || !approx(*recs[1].PeriodReturn, 0.10) {
		t.Errorf("day 2 period return = %v, want 0.10", recs[1].PeriodReturn)
	}
	if recs[2].PeriodReturn == nil || !approx(*recs[2].PeriodReturn, -0.10) {
		t.Errorf("day 3 period return = %v, want -0.10", recs[2].PeriodReturn)
	}
	if recs[2].CumulativeReturn == nil || !approx(*recs[2].CumulativeReturn, 1.10*0.90-1) {
		t.Errorf("cumulative return = %v, want ~-0.01", recs[2].CumulativeReturn)
	}
}

func TestCompute_Drawdown(t *testing.T) {
	h := histFromPrices(model.Float(100), model.Float(110), model.Float(99))
	recs := Compute(h)

	if recs[1].Drawdown == nil || !approx(*recs[1].Drawdown, 0) {
		t.Errorf("at the peak drawdown = %v, want 0", recs[1].Drawdown)
	}
	// Peak growth 1.10, current 0.99: (1.10-0.99)/1.10 = 0.1
	if recs[2].Drawdown == nil || !approx(*recs[2].Drawdown, 0.1) {
		t.Errorf("day 3 drawdown = %v, want 0.1", recs[2].Drawdown)
	}
}

func TestCompute_ZeroDenominator(t *testing.T) {
	h := histFromPrices(model.Float(0), model.Float(50))
	recs := Compute(h)
	if recs[1].PeriodReturn != nil {
		t.Errorf("zero prior must yield nil period return, got %v", *recs[1].PeriodReturn)
	}
	for _, r := range recs {
		if r.PeriodReturn != nil && (math.IsInf(*r.PeriodReturn, 0) || math.IsNaN(*r.PeriodReturn)) {
			t.Error("non-finite return leaked out")
		}
	}
}

func TestCompute_MissingValueCarriesCumulative(t *testing.T) {
	h := histFromPrices(model.Float(100), nil, model.Float(110))
	recs := Compute(h)
	if recs[1].PeriodReturn != nil {
		t.Error("missing value must yield nil period return")
	}
	if recs[1].CumulativeReturn == nil || !approx(*recs[1].CumulativeReturn, 0) {
		t.Errorf("cumulative must carry over a gap, got %v", recs[1].CumulativeReturn)
	}
	if recs[2].PeriodReturn == nil || !approx(*recs[2].PeriodReturn, 0.10) {
		t.Errorf("return resumes against last defined value, got %v", recs[2].PeriodReturn)
	}
}

func TestCompute_EmptyAndSinglePoint(t *testing.T) {
	if recs := Compute(nil); len(recs) != 0 {
		t.Errorf("empty history must yield empty records, got %d", len(recs))
	}
	recs := Compute(histFromPrices(model.Float(100)))
	if len(recs) != 1 {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[0].PeriodReturn != nil {
		t.Error("single point has no period return")
	}
	if recs[0].CumulativeReturn == nil || !approx(*recs[0].CumulativeReturn, 0) {
		t.Error("first valid observation anchors cumulative return at 0")
	}
}

func TestCompute_BalanceFallback(t *testing.T) {
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h := model.History{
		{Date: model.NewDate(day), Balance: model.Float(1000)},
		{Date: model.NewDate(day.AddDate(0, 0, 1)), Balance: model.Float(1100)},
	}
	recs := Compute(h)
	if recs[1].PeriodReturn == nil || !approx(*recs[1].PeriodReturn, 0.10) {
		t.Errorf("balance fallback return = %v, want 0.10", recs[1].PeriodReturn)
	}
}

func TestCompute_DailyPnLFromCumulative(t *testing.T) {
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h := model.History{
		{Date: model.NewDate(day), TotalPnL: model.Float(100)},
		{Date: model.NewDate(day.AddDate(0, 0, 1)), TotalPnL: model.Float(160)},
		{Date: model.NewDate(day.AddDate(0, 0, 2)), TotalPnL: model.Float(130)},
	}
	recs := Compute(h)
	if recs[0].DailyPnL != nil {
		t.Error("first day has no prior PnL")
	}
	if recs[1].DailyPnL == nil || *recs[1].DailyPnL != 60 {
		t.Errorf("day 2 pnl = %v, want 60", recs[1].DailyPnL)
	}
	if recs[2].DailyPnL == nil || *recs[2].DailyPnL != -30 {
		t.Errorf("day 3 pnl = %v, want -30", recs[2].DailyPnL)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	h := histFromPrices(model.Float(100), model.Float(103), model.Float(97), model.Float(105))
	a := Compute(h)
	b := Compute(h)
	for i := range a {
		if (a[i].PeriodReturn == nil) != (b[i].PeriodReturn == nil) {
			t.Fatal("non-deterministic output")
		}
		if a[i].PeriodReturn != nil && *a[i].PeriodReturn != *b[i].PeriodReturn {
			t.Fatal("non-deterministic output")
		}
	}
}

func TestRollingVol(t *testing.T) {
	h := histFromPrices(
		model.Float(100), model.Float(102), model.Float(101),
		model.Float(104), model.Float(103),
	)
	recs := Compute(h)
	if recs[1].RollingVol7 != nil {
		t.Error("one defined return is not enough for a volatility estimate")
	}
	if recs[4].RollingVol7 == nil || *recs[4].RollingVol7 <= 0 {
		t.Errorf("expected positive rolling vol, got %v", recs[4].RollingVol7)
	}
}

func TestSummarize(t *testing.T) {
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h := model.History{
		{Date: model.NewDate(day), SharePrice: model.Float(100), TotalPnL: model.Float(-10), Balance: model.Float(900)},
		{Date: model.NewDate(day.AddDate(0, 0, 1)), SharePrice: model.Float(110), TotalPnL: model.Float(40), Balance: model.Float(950)},
		{Date: model.NewDate(day.AddDate(0, 0, 2)), SharePrice: model.Float(99), TotalPnL: model.Float(20), Balance: model.Float(930)},
	}
	recs := Compute(h)
	sum := Summarize(h, recs)
	if sum == nil {
		t.Fatal("expected summary")
	}
	if sum.TotalDays != 3 || sum.PositiveDays != 2 || sum.NegativeDays != 1 {
		t.Errorf("day counts = %d/%d/%d", sum.TotalDays, sum.PositiveDays, sum.NegativeDays)
	}
	if sum.MaxCumulativePnL == nil || *sum.MaxCumulativePnL != 40 {
		t.Errorf("max pnl = %v", sum.MaxCumulativePnL)
	}
	if sum.MinCumulativePnL == nil || *sum.MinCumulativePnL != -10 {
		t.Errorf("min pnl = %v", sum.MinCumulativePnL)
	}
	if sum.MedianPnL == nil || *sum.MedianPnL != 20 {
		t.Errorf("median pnl = %v", sum.MedianPnL)
	}
	if sum.LatestBalance == nil || *sum.LatestBalance != 930 {
		t.Errorf("latest balance = %v", sum.LatestBalance)
	}
	if Summarize(nil, nil) != nil {
		t.Error("empty input must summarize to nil")
	}
}
