package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"taxprep-backend/internal/interview"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new interview session.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO interview_sessions (id, user_id, tax_year, status, schema_version, payload, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("marshal session payload: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		rec.TaxYear,
		string(rec.Status),
		rec.SchemaVersion,
		payload,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// GetCurrentByUser returns the most recently updated session for a user.
func (r *PGRepo) GetCurrentByUser(ctx context.Context, userID string) (Record, error) {
	const query = `
SELECT id, user_id, tax_year, status, schema_version, payload, created_at, updated_at
FROM interview_sessions
WHERE user_id = $1
ORDER BY updated_at DESC
LIMIT 1`

	var (
		rec     Record
		status  string
		payload []byte
	)
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.TaxYear,
		&status,
		&rec.SchemaVersion,
		&payload,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec.Status = interview.State(status)
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &rec.Payload); err != nil {
			return Record{}, fmt.Errorf("unmarshal session payload: %w", err)
		}
	}
	return rec, nil
}

// Update overwrites the stored snapshot for a session.
func (r *PGRepo) Update(ctx context.Context, rec Record) error {
	const query = `
UPDATE interview_sessions
SET status = $2, schema_version = $3, payload = $4, updated_at = $5
WHERE id = $1`

	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("marshal session payload: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, rec.ID, string(rec.Status), rec.SchemaVersion, payload, rec.UpdatedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
