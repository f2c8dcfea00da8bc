// Package dates provides calendar-day arithmetic shared by the drift and streak engines.
//
// Every function here compares calendar dates rather than elapsed durations, so a
// timestamp at 23:59 and one at 00:01 the next morning are one day apart, and days
// that are 23 or 25 hours long (DST transitions) still count as a single day.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DayKeyLayout is the layout used for DayKey.
const DayKeyLayout = "2006-01-02"

// ErrUnrecognizedDate is returned by Parse for input it cannot read.
var ErrUnrecognizedDate = errors.New("unrecognized date")

// StartOfDay returns midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole calendar days from earlier to later.
// Both instants are viewed in later's location before their dates are compared.
// The result is negative when earlier falls on a later calendar day.
func DaysBetween(later, earlier time.Time) int {
	loc := later.Location()
	ly, lm, ld := later.Date()
	ey, em, ed := earlier.In(loc).Date()

	// Calendar dates are projected onto UTC, where every day is exactly 24h.
	l := time.Date(ly, lm, ld, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(l.Sub(e).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// AddDays moves t by n calendar days, keeping the wall-clock time.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DayKey formats the calendar date of t in loc. A nil loc uses t's own location.
func DayKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DayKeyLayout)
}

// Parse reads a user-supplied moment relative to now. "", "now" and "today"
// mean now, "yesterday" means this time yesterday, and a bare YYYY-MM-DD is
// noon of that day. RFC 3339 timestamps are accepted too. The result is always
// in now's location, so its calendar day matches the one DayKey stores.
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "now", "today":
		return now, nil
	case "yesterday":
		return AddDays(now, -1), nil
	}

	if day, err := time.ParseInLocation(DayKeyLayout, s, now.Location()); err == nil {
		return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, now.Location()), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("%w: can't read %q as a date, use YYYY-MM-DD, today or yesterday",
		ErrUnrecognizedDate, s)
}

// Greeting returns a time-of-day salutation for t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "Good Morning"
	case h >= 12 && h < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
