package models

import "time"

// SpreadRow is one joined weekly row: both input rates in percent and
// their spread in basis points.
type SpreadRow struct {
	Date   time.Time
	A      float64
	B      float64
	Spread float64
}

// SpreadSeries is the inner join of two aligned series with the spread
// column. Row dates are a subset of both inputs.
type SpreadSeries struct {
	LabelA      string
	LabelB      string
	SpreadLabel string
	Rows        []SpreadRow
}

func (sp *SpreadSeries) Len() int { return len(sp.Rows) }

// Spreads returns the spread column in date order.
func (sp *SpreadSeries) Spreads() []float64 {
	vals := make([]float64, len(sp.Rows))
	for i, r := range sp.Rows {
		vals[i] = r.Spread
	}
	return vals
}

// Columns returns the two rate columns in date order.
func (sp *SpreadSeries) Columns() (a, b []float64) {
	a = make([]float64, len(sp.Rows))
	b = make([]float64, len(sp.Rows))
	for i, r := range sp.Rows {
		a[i] = r.A
		b[i] = r.B
	}
	return a, b
}
