package model

import "time"

// EventType names a change broadcast to connected dashboards.
type EventType string

const (
	EventStudentsChanged   EventType = "students.changed"
	EventAttendanceSaved   EventType = "attendance.saved"
	EventSessionAdded      EventType = "session.added"
	EventSocialActionSaved EventType = "social_action.saved"
)

// DashboardEvent tells dashboards which collection changed so they can refetch.
type DashboardEvent struct {
	Type      EventType `json:"type"`
	At        time.Time `json:"at"`
	Date      string    `json:"date,omitempty"`
	StudentID string    `json:"student_id,omitempty"`
}
