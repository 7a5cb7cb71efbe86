package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/repository"
)

// StudentRepository keeps the roster in memory.
type StudentRepository struct {
	mu       sync.RWMutex
	students map[string]model.Student
}

// NewStudentRepository creates an empty StudentRepository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{students: make(map[string]model.Student)}
}

func (r *StudentRepository) seed(students []model.Student) {
	_ = r.CreateMany(context.Background(), students)
}

// List returns the roster ordered by name, optionally filtered by a
// case-insensitive name substring.
func (r *StudentRepository) List(_ context.Context, query string) ([]model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query = strings.ToLower(query)
	out := []model.Student{}
	for _, s := range r.students {
		if query != "" && !strings.Contains(strings.ToLower(s.Name), query) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *StudentRepository) GetByID(_ context.Context, id string) (*model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *StudentRepository) Create(_ context.Context, s *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insert(s, time.Now().UTC())
	return nil
}

func (r *StudentRepository) CreateMany(_ context.Context, students []model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for i := range students {
		r.insert(&students[i], now)
	}
	return nil
}

func (r *StudentRepository) insert(s *model.Student, now time.Time) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = now
	s.UpdatedAt = now
	r.students[s.ID] = *s
}

func (r *StudentRepository) Update(_ context.Context, s *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.students[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = time.Now().UTC()
	r.students[s.ID] = *s
	return nil
}

// Delete removes the student only; records keyed by the ID stay behind.
func (r *StudentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.students, id)
	return nil
}
