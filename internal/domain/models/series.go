package models

import "time"

// Observation is a single dated value of a rate series, in percent.
type Observation struct {
	Date  time.Time
	Value float64
}

// Series is an ordered rate series: dates strictly increasing, one value
// per date. Note: no transport (json/http) concerns here.
type Series struct {
	ID    string // source identifier, e.g. MORTGAGE30US
	Label string // column label, e.g. PMMS_30Y
	Obs   []Observation
}

func (s *Series) Len() int { return len(s.Obs) }

// Values returns the observation values in date order.
func (s *Series) Values() []float64 {
	vals := make([]float64, len(s.Obs))
	for i, o := range s.Obs {
		vals[i] = o.Value
	}
	return vals
}

// First returns the earliest observation date, zero if empty.
func (s *Series) First() time.Time {
	if len(s.Obs) == 0 {
		return time.Time{}
	}
	return s.Obs[0].Date
}

// Last returns the latest observation date, zero if empty.
func (s *Series) Last() time.Time {
	if len(s.Obs) == 0 {
		return time.Time{}
	}
	return s.Obs[len(s.Obs)-1].Date
}
