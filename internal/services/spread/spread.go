// Package spread joins two aligned series and computes their difference
// in basis points.
package spread

import (
	"RateSpread/internal/domain/models"
	"RateSpread/pkg/util"
)

// BpsPerPoint converts a percentage-point difference to basis points.
const BpsPerPoint = 100.0

// Calculate inner-joins a and b on date and computes (a - b) * 100.
// Dates present in only one input are dropped, not padded.
func Calculate(a, b *models.Series, label string) *models.SpreadSeries {
	out := &models.SpreadSeries{
		LabelA:      a.Label,
		LabelB:      b.Label,
		SpreadLabel: label,
	}

	byDate := make(map[int64]float64, len(b.Obs))
	for _, o := range b.Obs {
		byDate[util.DateOnly(o.Date).Unix()] = o.Value
	}

	for _, o := range a.Obs {
		bv, ok := byDate[util.DateOnly(o.Date).Unix()]
		if !ok {
			continue
		}
		out.Rows = append(out.Rows, models.SpreadRow{
			Date:   util.DateOnly(o.Date),
			A:      o.Value,
			B:      bv,
			Spread: (o.Value - bv) * BpsPerPoint,
		})
	}

	return out
}
