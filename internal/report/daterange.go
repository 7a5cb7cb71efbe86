package report

import (
	"errors"
	"sort"

	"github.com/stemsi/attendance-backend/internal/model"
)

var ErrInvertedRange = errors.New("range start is after range end")

// DateRange is an inclusive range of ISO dates. An empty bound is open.
// Bounds are compared as strings, which matches chronological order for ISO dates.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// NewDateRange validates both bounds.
func NewDateRange(from, to string) (DateRange, error) {
	if from != "" && !model.IsISODate(from) {
		return DateRange{}, model.ErrInvalidDate
	}
	if to != "" && !model.IsISODate(to) {
		return DateRange{}, model.ErrInvalidDate
	}
	if from != "" && to != "" && from > to {
		return DateRange{}, ErrInvertedRange
	}
	return DateRange{From: from, To: to}, nil
}

// Contains reports whether date falls inside the range.
func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

// RecordedDates returns the dates inside r that have attendance recorded, newest first.
func RecordedDates(records model.AttendanceRecords, r DateRange) []string {
	dates := make([]string, 0, len(records))
	for date := range records {
		if r.Contains(date) {
			dates = append(dates, date)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}
