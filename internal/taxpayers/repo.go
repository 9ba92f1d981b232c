package taxpayers

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("taxpayer profile not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repo defines persistence operations for taxpayer profiles.
type Repo interface {
	Upsert(ctx context.Context, p Profile) error
	GetByUser(ctx context.Context, userID string) (Profile, error)
}
