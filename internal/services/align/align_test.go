package align

import (
	"testing"
	"time"

	"RateSpread/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestToWeeklyTakesLastObservation(t *testing.T) {
	// 2024-01-03 and 2024-01-10 are Wednesdays.
	s := &models.Series{ID: "DGS10", Label: "Treasury_10Y", Obs: []models.Observation{
		{Date: day(2024, 1, 2), Value: 3.9}, // Tue
		{Date: day(2024, 1, 3), Value: 4.0}, // Wed, closes first bucket
		{Date: day(2024, 1, 4), Value: 4.1}, // Thu, next bucket
		{Date: day(2024, 1, 8), Value: 4.2}, // Mon
		{Date: day(2024, 1, 9), Value: 4.3}, // Tue, last before Wed 10th
	}}

	w := ToWeekly(s, time.Wednesday)
	if w.Len() != 2 {
		t.Fatalf("expected 2 weekly rows, got %d", w.Len())
	}
	if !w.Obs[0].Date.Equal(day(2024, 1, 3)) || w.Obs[0].Value != 4.0 {
		t.Fatalf("unexpected first row %+v", w.Obs[0])
	}
	if !w.Obs[1].Date.Equal(day(2024, 1, 10)) || w.Obs[1].Value != 4.3 {
		t.Fatalf("unexpected second row %+v", w.Obs[1])
	}
}

func TestToWeeklyDropsEmptyWeeks(t *testing.T) {
	s := &models.Series{Obs: []models.Observation{
		{Date: day(2024, 1, 2), Value: 1.0},
		// two-week gap, no observation in the week ending 2024-01-10
		{Date: day(2024, 1, 16), Value: 2.0},
	}}

	w := ToWeekly(s, time.Wednesday)
	if w.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", w.Len())
	}
	if !w.Obs[1].Date.Equal(day(2024, 1, 17)) {
		t.Fatalf("unexpected second date %v", w.Obs[1].Date)
	}
}

func TestToWeeklyInvariants(t *testing.T) {
	// Daily series over three months.
	s := &models.Series{}
	for d := day(2024, 1, 1); d.Before(day(2024, 4, 1)); d = d.AddDate(0, 0, 1) {
		s.Obs = append(s.Obs, models.Observation{Date: d, Value: float64(d.YearDay())})
	}

	w := ToWeekly(s, time.Wednesday)
	prev := time.Time{}
	for _, o := range w.Obs {
		if o.Date.Weekday() != time.Wednesday {
			t.Fatalf("row %v not on Wednesday", o.Date)
		}
		if !prev.IsZero() && !o.Date.After(prev) {
			t.Fatalf("dates not strictly increasing at %v", o.Date)
		}
		prev = o.Date
		// Value equals the last observation on or before the row date:
		// for a daily input that is the Wednesday itself, except the last
		// partial week which carries its final observation.
		if o.Date.Before(s.Obs[len(s.Obs)-1].Date) || o.Date.Equal(s.Obs[len(s.Obs)-1].Date) {
			if o.Value != float64(o.Date.YearDay()) {
				t.Fatalf("row %v value %v, want %v", o.Date, o.Value, o.Date.YearDay())
			}
		}
	}
}

func TestToWeeklyEmpty(t *testing.T) {
	w := ToWeekly(&models.Series{ID: "X"}, time.Wednesday)
	if w.Len() != 0 {
		t.Fatalf("expected empty output")
	}
	if w.ID != "X" {
		t.Fatalf("expected id carried over")
	}
}
