// Package align resamples irregular rate series to one observation per
// calendar week.
package align

import (
	"time"

	"RateSpread/internal/domain/models"
	"RateSpread/pkg/util"
)

// ToWeekly resamples s to weekly frequency with buckets ending on wd.
// Each output row is dated on the bucket-ending weekday and carries the
// last observation in that bucket. Weeks with no observation are dropped.
func ToWeekly(s *models.Series, wd time.Weekday) *models.Series {
	out := &models.Series{ID: s.ID, Label: s.Label}
	if len(s.Obs) == 0 {
		return out
	}

	// Input dates are strictly increasing, so the last observation seen
	// for a bucket is the week's value and buckets close in order.
	var bucket time.Time
	var last models.Observation
	for _, o := range s.Obs {
		end := util.WeekEnding(o.Date, wd)
		if !bucket.IsZero() && !end.Equal(bucket) {
			out.Obs = append(out.Obs, models.Observation{Date: bucket, Value: last.Value})
		}
		bucket = end
		last = o
	}
	out.Obs = append(out.Obs, models.Observation{Date: bucket, Value: last.Value})

	return out
}
