package model

// Record holds the derived metrics for one date. Pointer fields are nil where
// the value is undefined (no prior observation, zero/nil denominator, metric
// missing from the underlying snapshot); nil must propagate, never collapse
// to zero.
type Record struct {
	Date             Date
	Value            *float64 // valuation basis: share price, else balance
	PeriodReturn     *float64 // (v[t] / v[t-1]) - 1
	CumulativeReturn *float64 // compounded from the first valid observation
	Drawdown         *float64 // (peak - current) / peak, on cumulative growth
	DailyPnL         *float64 // first difference of reported cumulative PnL
	CumulativePnL    *float64 // cumulative PnL as reported by the dashboard
	RollingVol7      *float64 // stddev of the trailing 7 period returns
}

// Summary condenses a record sequence into the report header figures.
type Summary struct {
	Inception        Date
	Latest           Date
	TotalDays        int
	PositiveDays     int // days with positive cumulative PnL
	NegativeDays     int
	LatestBalance    *float64
	LatestPnL        *float64
	LatestReturn     *float64
	MaxCumulativePnL *float64
	MinCumulativePnL *float64
	MedianPnL        *float64
	MaxDrawdown      *float64
}
