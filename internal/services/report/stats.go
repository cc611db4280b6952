// Package report renders summary statistics, CSV exports, and chart
// images for spread series.
package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"RateSpread/internal/domain/models"
)

// Describe computes pandas-style descriptive statistics: count, mean,
// sample std, min, linearly interpolated quartiles, max.
func Describe(values []float64) models.SummaryStats {
	s := models.SummaryStats{Count: len(values)}
	if len(values) == 0 {
		return s
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.50)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

// quantile linearly interpolates between order statistics at rank
// p*(n-1), matching the pandas describe() default.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
