package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/repository"
)

// AttendanceRepository keeps attendance cells keyed by (date, student).
type AttendanceRepository struct {
	mu      sync.RWMutex
	records model.AttendanceRecords
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{records: model.AttendanceRecords{}}
}

func (r *AttendanceRepository) ListByDate(_ context.Context, date string) (model.DayAttendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := model.DayAttendance{}
	for id, status := range r.records[date] {
		day[id] = status
	}
	return day, nil
}

func (r *AttendanceRepository) ListAll(_ context.Context) (model.AttendanceRecords, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(model.AttendanceRecords, len(r.records))
	for date, day := range r.records {
		cp := make(model.DayAttendance, len(day))
		for id, status := range day {
			cp[id] = status
		}
		out[date] = cp
	}
	return out, nil
}

func (r *AttendanceRepository) UpsertDay(_ context.Context, date string, day model.DayAttendance) error {
	if len(day) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.records[date] == nil {
		r.records[date] = model.DayAttendance{}
	}
	for id, status := range day {
		r.records[date][id] = status
	}
	return nil
}

// SessionLogRepository keeps logs per student, newest insert first.
type SessionLogRepository struct {
	mu   sync.RWMutex
	logs model.SessionLogs
}

func NewSessionLogRepository() *SessionLogRepository {
	return &SessionLogRepository{logs: model.SessionLogs{}}
}

func (r *SessionLogRepository) ListByStudent(_ context.Context, studentID string) ([]model.SessionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.SessionLog{}, r.logs[studentID]...), nil
}

func (r *SessionLogRepository) ListAll(_ context.Context) (model.SessionLogs, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(model.SessionLogs, len(r.logs))
	for id, logs := range r.logs {
		out[id] = append([]model.SessionLog(nil), logs...)
	}
	return out, nil
}

// Create prepends the log to the student's list.
func (r *SessionLogRepository) Create(_ context.Context, l *model.SessionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now().UTC()
	r.logs[l.StudentID] = append([]model.SessionLog{*l}, r.logs[l.StudentID]...)
	return nil
}

// SocialActionRepository keeps one record per student.
type SocialActionRepository struct {
	mu      sync.RWMutex
	records map[string]model.SocialActionRecord
}

func NewSocialActionRepository() *SocialActionRepository {
	return &SocialActionRepository{records: map[string]model.SocialActionRecord{}}
}

func (r *SocialActionRepository) ListAll(_ context.Context) (map[string]model.SocialActionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]model.SocialActionRecord, len(r.records))
	for id, rec := range r.records {
		out[id] = rec
	}
	return out, nil
}

func (r *SocialActionRepository) GetByStudent(_ context.Context, studentID string) (*model.SocialActionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[studentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r *SocialActionRepository) Upsert(_ context.Context, rec *model.SocialActionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.UpdatedAt = time.Now().UTC()
	r.records[rec.StudentID] = *rec
	return nil
}

// AdminRepository keeps dashboard accounts.
type AdminRepository struct {
	mu     sync.RWMutex
	nextID int
	admins map[int]model.Admin
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{admins: map[int]model.Admin{}}
}

func (r *AdminRepository) GetByID(_ context.Context, id int) (*model.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *AdminRepository) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AdminRepository) Create(_ context.Context, a *model.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	now := time.Now().UTC()
	a.ID = r.nextID
	a.CreatedAt = now
	a.UpdatedAt = now
	r.admins[a.ID] = *a
	return nil
}
