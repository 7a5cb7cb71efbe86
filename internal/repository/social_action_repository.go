package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/attendance-backend/internal/model"
)

const socialActionColumns = `student_id::text, place, acceptance_letter, unit1_hours, unit2_hours, unit3_hours, updated_at`

// SocialActionRepository handles community-service record data access.
type SocialActionRepository struct {
	pool *pgxpool.Pool
}

// NewSocialActionRepository creates a new SocialActionRepository.
func NewSocialActionRepository(pool *pgxpool.Pool) *SocialActionRepository {
	return &SocialActionRepository{pool: pool}
}

func scanSocialAction(row pgx.Row, rec *model.SocialActionRecord) error {
	var u1, u2, u3 float64
	if err := row.Scan(&rec.StudentID, &rec.Place, &rec.AcceptanceLetter, &u1, &u2, &u3, &rec.UpdatedAt); err != nil {
		return err
	}
	rec.Unit1Hours = model.CoerceHours(u1)
	rec.Unit2Hours = model.CoerceHours(u2)
	rec.Unit3Hours = model.CoerceHours(u3)
	return nil
}

// ListAll returns every record keyed by student ID.
func (r *SocialActionRepository) ListAll(ctx context.Context) (map[string]model.SocialActionRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+socialActionColumns+` FROM social_actions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := map[string]model.SocialActionRecord{}
	for rows.Next() {
		var rec model.SocialActionRecord
		if err := scanSocialAction(rows, &rec); err != nil {
			return nil, err
		}
		records[rec.StudentID] = rec
	}
	return records, rows.Err()
}

// GetByStudent retrieves one student's record.
func (r *SocialActionRepository) GetByStudent(ctx context.Context, studentID string) (*model.SocialActionRecord, error) {
	rec := &model.SocialActionRecord{}
	err := scanSocialAction(r.pool.QueryRow(ctx,
		`SELECT `+socialActionColumns+` FROM social_actions WHERE student_id = $1`, studentID,
	), rec)
	if err != nil {
		return nil, notFound(err)
	}
	return rec, nil
}

// Upsert writes the record keyed by student ID. Re-sending the same record is a no-op.
func (r *SocialActionRepository) Upsert(ctx context.Context, rec *model.SocialActionRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO social_actions (student_id, place, acceptance_letter, unit1_hours, unit2_hours, unit3_hours, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		 ON CONFLICT (student_id) DO UPDATE SET
		   place = EXCLUDED.place,
		   acceptance_letter = EXCLUDED.acceptance_letter,
		   unit1_hours = EXCLUDED.unit1_hours,
		   unit2_hours = EXCLUDED.unit2_hours,
		   unit3_hours = EXCLUDED.unit3_hours,
		   updated_at = EXCLUDED.updated_at
		 RETURNING updated_at`,
		rec.StudentID, rec.Place, rec.AcceptanceLetter,
		float64(rec.Unit1Hours), float64(rec.Unit2Hours), float64(rec.Unit3Hours),
	).Scan(&rec.UpdatedAt)
}
