package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/stemsi/attendance-backend/internal/model"
)

var nameSeparators = regexp.MustCompile(`[\n,]`)

// ParseNames splits pasted text on new lines and commas, trimming each name
// and dropping empty entries.
func ParseNames(raw string) []string {
	names := []string{}
	for _, part := range nameSeparators.Split(raw, -1) {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// StudentService handles roster business logic.
type StudentService struct {
	students StudentStore
	events   EventPublisher
}

// NewStudentService creates a new StudentService.
func NewStudentService(students StudentStore, events EventPublisher) *StudentService {
	return &StudentService{students: students, events: events}
}

// List returns the roster, optionally filtered by a name substring.
func (s *StudentService) List(ctx context.Context, query string) ([]model.Student, error) {
	return s.students.List(ctx, strings.TrimSpace(query))
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id string) (*model.Student, error) {
	return s.students.GetByID(ctx, id)
}

// Create adds a single student.
func (s *StudentService) Create(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}
	s.publish(ctx, student.ID)
	return student, nil
}

// BulkImport adds one student per pasted name, with no optional fields.
func (s *StudentService) BulkImport(ctx context.Context, raw string) ([]model.Student, error) {
	names := ParseNames(raw)
	if len(names) == 0 {
		return nil, ErrNoNames
	}

	students := make([]model.Student, len(names))
	for i, name := range names {
		students[i] = model.Student{Name: name}
	}
	if err := s.students.CreateMany(ctx, students); err != nil {
		return nil, err
	}
	s.publish(ctx, "")
	return students, nil
}

// Update replaces a student's editable fields.
func (s *StudentService) Update(ctx context.Context, id string, req model.UpdateStudentRequest) (*model.Student, error) {
	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	student.ID = id
	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	s.publish(ctx, id)
	return student, nil
}

// Delete removes a student. Historical records stay and are ignored by reports.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id)
	return nil
}

func (s *StudentService) publish(ctx context.Context, studentID string) {
	s.events.Publish(ctx, model.DashboardEvent{
		Type:      model.EventStudentsChanged,
		StudentID: studentID,
	})
}

func studentFromRequest(req model.CreateStudentRequest) (*model.Student, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return &model.Student{
		Name:           name,
		Classroom:      trimmedOptional(req.Classroom),
		Workshop:       trimmedOptional(req.Workshop),
		Specialization: trimmedOptional(req.Specialization),
	}, nil
}

func trimmedOptional(s string) *string {
	return model.OptionalString(strings.TrimSpace(s))
}
