package taxpayers

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts or updates the profile for a user.
func (r *PGRepo) Upsert(ctx context.Context, p Profile) error {
	const query = `
INSERT INTO taxpayers (user_id, full_name, email, filing_status, dependents, state, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id) DO UPDATE SET
    full_name = EXCLUDED.full_name,
    email = EXCLUDED.email,
    filing_status = EXCLUDED.filing_status,
    dependents = EXCLUDED.dependents,
    state = EXCLUDED.state,
    updated_at = EXCLUDED.updated_at`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		p.UserID,
		p.FullName,
		p.Email,
		p.FilingStatus,
		p.Dependents,
		p.State,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// GetByUser returns the profile for a user.
func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, full_name, email, filing_status, dependents, state, created_at, updated_at
FROM taxpayers
WHERE user_id = $1`

	var p Profile
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.FullName,
		&p.Email,
		&p.FilingStatus,
		&p.Dependents,
		&p.State,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}
