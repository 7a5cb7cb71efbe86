package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemsi/attendance-backend/internal/model"
)

// AttendanceService handles daily attendance taking.
type AttendanceService struct {
	attendance AttendanceStore
	events     EventPublisher
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendance AttendanceStore, events EventPublisher) *AttendanceService {
	return &AttendanceService{attendance: attendance, events: events}
}

// GetDay returns the statuses recorded on date keyed by student ID.
func (s *AttendanceService) GetDay(ctx context.Context, date string) (model.DayAttendance, error) {
	if !model.IsISODate(date) {
		return nil, model.ErrInvalidDate
	}
	return s.attendance.ListByDate(ctx, date)
}

// SaveDay upserts every given cell for date and returns the full day afterwards.
// Students not in records keep whatever was stored before.
func (s *AttendanceService) SaveDay(ctx context.Context, date string, records map[string]model.AttendanceStatus) (model.DayAttendance, error) {
	if !model.IsISODate(date) {
		return nil, model.ErrInvalidDate
	}

	day := make(model.DayAttendance, len(records))
	for studentID, raw := range records {
		if _, err := uuid.Parse(studentID); err != nil {
			return nil, ErrInvalidStudentID
		}
		status, err := model.ParseAttendanceStatus(string(raw))
		if err != nil {
			return nil, err
		}
		day[studentID] = status
	}

	if err := s.attendance.UpsertDay(ctx, date, day); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, model.DashboardEvent{
		Type: model.EventAttendanceSaved,
		Date: date,
	})

	return s.attendance.ListByDate(ctx, date)
}
