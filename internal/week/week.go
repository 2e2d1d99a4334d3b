// Package week resolves calendar-week windows and the daily buckets inside them.
//
// Nothing here reads the wall clock. Callers pass the current instant in,
// so the same instant always resolves to the same window.
package week

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date used as the daily bucket key.
const DateLayout = "2006-01-02"

// Window is one calendar week. Both Start and End are inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Resolve returns the week containing now. The week begins at midnight of
// firstDay in now's location and ends one nanosecond before the next one.
func Resolve(now time.Time, firstDay time.Weekday) Window {
	offset := (int(now.Weekday()) - int(firstDay) + 7) % 7
	day := now.AddDate(0, 0, -offset)

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)

	return Window{Start: start, End: end}
}

// Contains reports whether t lies in [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Day returns the calendar date of t in the window's location.
func (w Window) Day(t time.Time) string {
	return t.In(w.Start.Location()).Format(DateLayout)
}

// Days lists the seven dates of the window in order.
func (w Window) Days() []string {
	days := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, w.Start.AddDate(0, 0, i).Format(DateLayout))
	}
	return days
}

// ParseWeekday accepts a weekday name ("sunday", "Monday", ...) or its
// three-letter abbreviation.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %q", s)
}
