// Package dateutil provides the local calendar-date helpers used as the
// unit of "day" for completion and daily-reset logic. Dates are plain
// YYYY-MM-DD strings, so ordinary string comparison orders them.
package dateutil

import "time"

const DateLayout = "2006-01-02"

// DateString returns t's calendar date in t's own location.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current local calendar date.
func Today() string {
	return DateString(time.Now())
}
