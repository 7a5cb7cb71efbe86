package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/attendance-backend/internal/model"
)

const sessionLogColumns = `id::text, student_id::text, to_char(date, 'YYYY-MM-DD'), type, notes, created_at`

// SessionLogRepository handles preceptoría session data access.
// Logs are always returned most recently inserted first.
type SessionLogRepository struct {
	pool *pgxpool.Pool
}

// NewSessionLogRepository creates a new SessionLogRepository.
func NewSessionLogRepository(pool *pgxpool.Pool) *SessionLogRepository {
	return &SessionLogRepository{pool: pool}
}

func scanSessionLogs(rows pgx.Rows) ([]model.SessionLog, error) {
	defer rows.Close()

	logs := []model.SessionLog{}
	for rows.Next() {
		var l model.SessionLog
		if err := rows.Scan(&l.ID, &l.StudentID, &l.Date, &l.Type, &l.Notes, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// ListByStudent returns one student's logs.
func (r *SessionLogRepository) ListByStudent(ctx context.Context, studentID string) ([]model.SessionLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionLogColumns+` FROM session_logs WHERE student_id = $1 ORDER BY seq DESC`, studentID,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return scanSessionLogs(rows)
}

// ListAll returns every log grouped by student.
func (r *SessionLogRepository) ListAll(ctx context.Context) (model.SessionLogs, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+sessionLogColumns+` FROM session_logs ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	logs, err := scanSessionLogs(rows)
	if err != nil {
		return nil, err
	}

	grouped := model.SessionLogs{}
	for _, l := range logs {
		grouped[l.StudentID] = append(grouped[l.StudentID], l)
	}
	return grouped, nil
}

// Create appends a log.
func (r *SessionLogRepository) Create(ctx context.Context, l *model.SessionLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO session_logs (id, student_id, date, type, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		l.ID, l.StudentID, l.Date, l.Type, l.Notes,
	).Scan(&l.CreatedAt)
}
