package sessions

import (
	"time"

	"taxprep-backend/internal/interview"
)

// Record is one persisted interview session. Payload holds the engine
// snapshot: answers as question id to value pairs plus queue bookkeeping
// and a schema version.
type Record struct {
	ID            string
	UserID        string
	TaxYear       int
	Status        interview.State
	SchemaVersion int
	Payload       interview.Snapshot
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
