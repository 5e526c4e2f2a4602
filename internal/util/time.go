package util

import (
	"fmt"
	"time"
)

// DateLayout is the calendar day key format used by the calendar widget.
const DateLayout = "2006-01-02"

// zone offsets are whole multiples of this step.
const offsetStep = 15 * time.Minute

// TruncateToDay returns the first instant of t's day in t's location.
func TruncateToDay(t time.Time) time.Time {
	return StartOfDay(t.Year(), t.Month(), t.Day(), t.Location())
}

// StartOfDay returns the first instant of the day in loc. Where a DST gap
// swallows midnight, that is the first wall-clock time after the gap.
func StartOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	want := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	for CalendarDay(t, loc).Before(want.Add(12 * time.Hour)) {
		t = t.Add(offsetStep)
	}
	return t
}

// CalendarDay is noon UTC of t's date in loc. Stepping these values with
// AddDate visits consecutive calendar dates regardless of DST in loc.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// DateKey returns the YYYY-MM-DD day of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// ParseDateKey returns the start of a YYYY-MM-DD day in loc.
func ParseDateKey(s string, loc *time.Location) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("incorrect date %q: %w", s, err)
	}
	return StartOfDay(d.Year(), d.Month(), d.Day(), loc), nil
}
