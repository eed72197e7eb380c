package domain

import "time"

// DateLayout is the storage and display format for calendar dates.
// Tasks and projects carry dates with no time component.
const DateLayout = "2006-01-02"

// Date truncates t to a calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DatePtr returns a pointer to t truncated to a calendar date.
func DatePtr(t time.Time) *time.Time {
	d := Date(t)
	return &d
}

// AddDays returns the calendar date n days after t (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	return Date(t).AddDate(0, 0, n)
}

// DaysBetween returns the signed whole-day difference to - from.
func DaysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)).Hours() / 24)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
