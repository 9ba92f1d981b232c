package taxpayers

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Profile
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Profile)}
}

// Upsert stores or replaces the profile for a user.
func (r *MemoryRepo) Upsert(ctx context.Context, p Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.data[p.UserID]; ok {
		p.CreatedAt = existing.CreatedAt
	}
	r.data[p.UserID] = p
	return nil
}

// GetByUser returns the profile for a user.
func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}
