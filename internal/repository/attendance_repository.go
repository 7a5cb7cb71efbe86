package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/attendance-backend/internal/model"
)

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// ListByDate returns the statuses recorded on one date, keyed by student ID.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) (model.DayAttendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id::text, status FROM attendance_records WHERE date = $1`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	day := model.DayAttendance{}
	for rows.Next() {
		var studentID string
		var status model.AttendanceStatus
		if err := rows.Scan(&studentID, &status); err != nil {
			return nil, err
		}
		day[studentID] = status
	}
	return day, rows.Err()
}

// ListAll returns every recorded cell grouped by date.
func (r *AttendanceRepository) ListAll(ctx context.Context) (model.AttendanceRecords, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT to_char(date, 'YYYY-MM-DD'), student_id::text, status FROM attendance_records`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := model.AttendanceRecords{}
	for rows.Next() {
		var date, studentID string
		var status model.AttendanceStatus
		if err := rows.Scan(&date, &studentID, &status); err != nil {
			return nil, err
		}
		if records[date] == nil {
			records[date] = model.DayAttendance{}
		}
		records[date][studentID] = status
	}
	return records, rows.Err()
}

// UpsertDay writes every (date, student) cell of day in one transaction.
// Existing cells for the date that are not in day are kept.
func (r *AttendanceRepository) UpsertDay(ctx context.Context, date string, day model.DayAttendance) error {
	if len(day) == 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for studentID, status := range day {
			batch.Queue(
				`INSERT INTO attendance_records (date, student_id, status, updated_at)
				 VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
				 ON CONFLICT (date, student_id)
				 DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`,
				date, studentID, status,
			)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}
