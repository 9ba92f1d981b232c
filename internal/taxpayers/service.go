package taxpayers

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Service contains business logic for taxpayer profiles.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Save validates and persists a profile for the user.
func (s *Service) Save(ctx context.Context, p Profile) (Profile, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return Profile{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	p.FilingStatus = strings.TrimSpace(strings.ToLower(p.FilingStatus))
	if p.FilingStatus == "" {
		p.FilingStatus = FilingSingle
	}
	if !ValidFilingStatus(p.FilingStatus) {
		return Profile{}, fmt.Errorf("%w: filing status %q", ErrInvalidInput, p.FilingStatus)
	}
	if p.Dependents < 0 {
		return Profile{}, fmt.Errorf("%w: dependents must not be negative", ErrInvalidInput)
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := s.Repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Get returns the profile for a user.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.GetByUser(ctx, userID)
}
