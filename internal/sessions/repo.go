package sessions

import "context"

// Repo defines persistence operations for interview sessions.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	GetCurrentByUser(ctx context.Context, userID string) (Record, error)
	Update(ctx context.Context, rec Record) error
}
