package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// AttendanceStatus is the recorded status of a student on a given day.
type AttendanceStatus string

const (
	StatusPresent   AttendanceStatus = "Present"
	StatusLate      AttendanceStatus = "Late"
	StatusAbsent    AttendanceStatus = "Absent"
	StatusJustified AttendanceStatus = "Justified"
)

// AttendanceStatuses lists every status in display order.
var AttendanceStatuses = []AttendanceStatus{StatusPresent, StatusLate, StatusAbsent, StatusJustified}

var ErrInvalidStatus = errors.New("status must be one of Present, Late, Absent, Justified")

// ParseAttendanceStatus accepts any letter case and returns the canonical form.
func ParseAttendanceStatus(raw string) (AttendanceStatus, error) {
	raw = strings.TrimSpace(raw)
	for _, s := range AttendanceStatuses {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// Valid reports whether s is one of the canonical statuses.
func (s AttendanceStatus) Valid() bool {
	for _, c := range AttendanceStatuses {
		if s == c {
			return true
		}
	}
	return false
}

// Initial returns the one-letter badge used in the daily tables.
func (s AttendanceStatus) Initial() string {
	if s == "" {
		return ""
	}
	return string(s)[:1]
}

// UnmarshalJSON makes the wire format case-insensitive.
func (s *AttendanceStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return ErrInvalidStatus
	}
	parsed, err := ParseAttendanceStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DayAttendance maps student id to the status recorded that day.
type DayAttendance map[string]AttendanceStatus

// AttendanceRecords maps an ISO date to that day's attendance.
type AttendanceRecords map[string]DayAttendance

// AttendanceEntry is one stored (date, student) cell.
type AttendanceEntry struct {
	Date      string           `json:"date"`
	StudentID string           `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SaveAttendanceRequest is the payload for saving one day of attendance.
type SaveAttendanceRequest struct {
	Records map[string]AttendanceStatus `json:"records" binding:"required"`
}
