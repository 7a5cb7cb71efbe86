package service

import (
	"context"
	"strings"
	"time"

	"github.com/stemsi/attendance-backend/internal/model"
)

// SessionService records preceptoría sessions.
type SessionService struct {
	students StudentStore
	sessions SessionLogStore
	events   EventPublisher
	now      func() time.Time
}

// NewSessionService creates a new SessionService. now supplies "today" for undated sessions.
func NewSessionService(students StudentStore, sessions SessionLogStore, events EventPublisher, now func() time.Time) *SessionService {
	return &SessionService{students: students, sessions: sessions, events: events, now: now}
}

// List returns a student's sessions, most recently recorded first.
func (s *SessionService) List(ctx context.Context, studentID string) ([]model.SessionLog, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.sessions.ListByStudent(ctx, studentID)
}

// Add records a session. Date defaults to today and type to Student.
func (s *SessionService) Add(ctx context.Context, studentID string, req model.CreateSessionLogRequest) (*model.SessionLog, error) {
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		return nil, ErrNotesRequired
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = model.FormatDate(s.now())
	} else if !model.IsISODate(date) {
		return nil, model.ErrInvalidDate
	}

	typ := req.Type
	if typ == "" {
		typ = model.SessionTypeStudent
	} else if parsed, err := model.ParseSessionType(string(typ)); err != nil {
		return nil, err
	} else {
		typ = parsed
	}

	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	log := &model.SessionLog{
		StudentID: studentID,
		Date:      date,
		Type:      typ,
		Notes:     notes,
	}
	if err := s.sessions.Create(ctx, log); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, model.DashboardEvent{
		Type:      model.EventSessionAdded,
		Date:      date,
		StudentID: studentID,
	})
	return log, nil
}
