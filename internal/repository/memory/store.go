// Package memory is an in-process record store used when STORE_DRIVER=memory
// and by the service and handler tests. It has the same semantics as the
// PostgreSQL repositories: upserts are keyed on natural keys, deletes are hard,
// and session logs come back most recently inserted first.
package memory

import (
	"github.com/stemsi/attendance-backend/internal/model"
)

// Store bundles one repository per collection.
type Store struct {
	Students      *StudentRepository
	Attendance    *AttendanceRepository
	SessionLogs   *SessionLogRepository
	SocialActions *SocialActionRepository
	Admins        *AdminRepository
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		Students:      NewStudentRepository(),
		Attendance:    NewAttendanceRepository(),
		SessionLogs:   NewSessionLogRepository(),
		SocialActions: NewSocialActionRepository(),
		Admins:        NewAdminRepository(),
	}
}

// DefaultStudents is the demo roster loaded into an empty store.
func DefaultStudents() []model.Student {
	return []model.Student{
		newDefault("Alice Johnson", "International", "Art", "Design"),
		newDefault("Bob Smith", "GAC", "Music", "Performance"),
		newDefault("Charlie Brown", "International", "Coding", "Web"),
		newDefault("Diana Prince", "GAC", "Sports", "Leadership"),
		newDefault("Evan Wright", "International", "Debate", "Law"),
	}
}

func newDefault(name, classroom, workshop, specialization string) model.Student {
	return model.Student{
		Name:           name,
		Classroom:      model.OptionalString(classroom),
		Workshop:       model.OptionalString(workshop),
		Specialization: model.OptionalString(specialization),
	}
}

// NewSeededStore creates a store holding the default roster.
func NewSeededStore() *Store {
	s := NewStore()
	s.Students.seed(DefaultStudents())
	return s
}
