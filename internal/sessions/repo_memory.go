package sessions

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured and as a test double.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Record // userID -> current session
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Record)}
}

// Create stores the current session for a user, replacing any prior one.
func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.UserID] = rec
	return nil
}

// GetCurrentByUser returns the current session for a user.
func (r *MemoryRepo) GetCurrentByUser(ctx context.Context, userID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[userID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Update overwrites a stored session.
func (r *MemoryRepo) Update(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[rec.UserID]
	if !ok || existing.ID != rec.ID {
		return ErrNotFound
	}
	r.data[rec.UserID] = rec
	return nil
}
