package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/attendance-backend/internal/model"
)

const studentColumns = `id::text, name, classroom, workshop, specialization, created_at, updated_at`

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

func scanStudent(row pgx.Row, s *model.Student) error {
	return row.Scan(&s.ID, &s.Name, &s.Classroom, &s.Workshop, &s.Specialization, &s.CreatedAt, &s.UpdatedAt)
}

// List returns the roster ordered by name. A non-empty query filters by a
// case-insensitive substring of the name.
func (r *StudentRepository) List(ctx context.Context, query string) ([]model.Student, error) {
	sql := `SELECT ` + studentColumns + ` FROM students`
	var args []interface{}
	if query != "" {
		sql += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, query)
	}
	sql += ` ORDER BY name, id`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
	s := &model.Student{}
	err := scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id,
	), s)
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO students (id, name, classroom, workshop, specialization)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		s.ID, s.Name, s.Classroom, s.Workshop, s.Specialization,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// CreateMany inserts students in one COPY, assigning IDs and timestamps.
func (r *StudentRepository) CreateMany(ctx context.Context, students []model.Student) error {
	if len(students) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range students {
		if students[i].ID == "" {
			students[i].ID = uuid.NewString()
		}
		students[i].CreatedAt = now
		students[i].UpdatedAt = now
	}

	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"students"},
		[]string{"id", "name", "classroom", "workshop", "specialization", "created_at", "updated_at"},
		pgx.CopyFromSlice(len(students), func(i int) ([]interface{}, error) {
			s := students[i]
			id, err := uuid.Parse(s.ID)
			if err != nil {
				return nil, err
			}
			return []interface{}{id, s.Name, s.Classroom, s.Workshop, s.Specialization, s.CreatedAt, s.UpdatedAt}, nil
		}),
	)
	return err
}

// Update modifies a student's details.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE students SET name = $1, classroom = $2, workshop = $3, specialization = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5
		 RETURNING created_at, updated_at`,
		s.Name, s.Classroom, s.Workshop, s.Specialization, s.ID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return notFound(err)
}

// Delete removes a student by ID. Attendance, sessions and social action rows
// referencing the student are left in place.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
