package service

import (
	"context"

	"github.com/stemsi/attendance-backend/internal/model"
)

// StudentStore persists the roster.
type StudentStore interface {
	List(ctx context.Context, query string) ([]model.Student, error)
	GetByID(ctx context.Context, id string) (*model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	CreateMany(ctx context.Context, students []model.Student) error
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id string) error
}

// AttendanceStore persists attendance cells keyed by (date, student).
type AttendanceStore interface {
	ListByDate(ctx context.Context, date string) (model.DayAttendance, error)
	ListAll(ctx context.Context) (model.AttendanceRecords, error)
	UpsertDay(ctx context.Context, date string, day model.DayAttendance) error
}

// SessionLogStore persists preceptoría logs. Lists are most recently inserted first.
type SessionLogStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]model.SessionLog, error)
	ListAll(ctx context.Context) (model.SessionLogs, error)
	Create(ctx context.Context, l *model.SessionLog) error
}

// SocialActionStore persists one community-service record per student.
type SocialActionStore interface {
	ListAll(ctx context.Context) (map[string]model.SocialActionRecord, error)
	GetByStudent(ctx context.Context, studentID string) (*model.SocialActionRecord, error)
	Upsert(ctx context.Context, rec *model.SocialActionRecord) error
}

// AdminStore persists dashboard accounts.
type AdminStore interface {
	GetByID(ctx context.Context, id int) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	Create(ctx context.Context, a *model.Admin) error
}

// EventPublisher announces a change to connected dashboards. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, evt model.DashboardEvent)
}
