package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// SessionType distinguishes a preceptoría held with the student from one held with the family.
type SessionType string

const (
	SessionTypeStudent SessionType = "Student"
	SessionTypeFamily  SessionType = "Family"
)

var ErrInvalidSessionType = errors.New("type must be Student or Family")

// ParseSessionType accepts any letter case and returns the canonical form.
func ParseSessionType(raw string) (SessionType, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(raw, string(SessionTypeStudent)):
		return SessionTypeStudent, nil
	case strings.EqualFold(raw, string(SessionTypeFamily)):
		return SessionTypeFamily, nil
	}
	return "", ErrInvalidSessionType
}

// UnmarshalJSON makes the wire format case-insensitive.
func (t *SessionType) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return ErrInvalidSessionType
	}
	if raw == "" {
		*t = ""
		return nil
	}
	parsed, err := ParseSessionType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// SessionLog is a recorded preceptoría session.
type SessionLog struct {
	ID        string      `json:"id"`
	StudentID string      `json:"student_id"`
	Date      string      `json:"date"`
	Type      SessionType `json:"type"`
	Notes     string      `json:"notes"`
	CreatedAt time.Time   `json:"created_at"`
}

// SessionLogs maps student id to that student's logs, most recently inserted first.
// The order is insertion order, not the order of the Date field.
type SessionLogs map[string][]SessionLog

// CreateSessionLogRequest is the payload for recording a new session.
// Date defaults to today and Type defaults to Student.
type CreateSessionLogRequest struct {
	Date  string      `json:"date" binding:"omitempty,isodate"`
	Type  SessionType `json:"type"`
	Notes string      `json:"notes" binding:"required,max=10000"`
}
