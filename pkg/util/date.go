package util

import (
    "fmt"
    "time"
)

// DateFormat is the ISO date layout used across config, FRED, and CSV output.
const DateFormat = "2006-01-02"

// ParseDate parses an ISO date (YYYY-MM-DD) into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
    t, err := time.Parse(DateFormat, s)
    if err != nil {
        return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
    }
    return t, nil
}

// DateOnly normalizes t to UTC midnight so dates compare as calendar days.
func DateOnly(t time.Time) time.Time {
    y, m, d := t.Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekEnding returns the date of the first weekday wd at or after t,
// normalized to UTC midnight. Observations sharing a WeekEnding fall in
// the same week bucket ending on that weekday.
func WeekEnding(t time.Time, wd time.Weekday) time.Time {
    d := DateOnly(t)
    offset := (int(wd) - int(d.Weekday()) + 7) % 7
    return d.AddDate(0, 0, offset)
}

// ParseWeekday maps an English weekday name to time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
    for wd := time.Sunday; wd <= time.Saturday; wd++ {
        if s == wd.String() {
            return wd, nil
        }
    }
    return 0, fmt.Errorf("unknown weekday %q", s)
}
