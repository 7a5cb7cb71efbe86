package model

import (
	"errors"
	"time"
)

// DateLayout is the ISO 8601 calendar date format used for every date key.
// Strings in this layout sort lexicographically in chronological order.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// ParseDate parses an ISO calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// IsISODate reports whether s is a real calendar date in DateLayout.
func IsISODate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// FormatDate renders the calendar date of t (in t's own location).
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
