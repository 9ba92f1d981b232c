package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"taxprep-backend/internal/interview"
	"taxprep-backend/internal/shared/metrics"
)

// Service owns interview lifecycle for persisted per-user sessions. Each
// call loads the user's current session, restores the engine from its
// snapshot, applies the operation, and persists the new snapshot.
type Service struct {
	Catalog *interview.Catalog
	Repo    Repo
	TaxYear int
}

// StartResult is returned when an interview is started.
type StartResult struct {
	SessionID string
	TaxYear   int
	Questions []interview.Question
}

// Start begins a fresh interview for the user, replacing any prior session.
func (s *Service) Start(ctx context.Context, userID string) (StartResult, error) {
	if strings.TrimSpace(userID) == "" {
		return StartResult{}, ErrInvalidInput
	}

	engine := interview.NewSession(s.Catalog)
	questions := engine.Start()

	now := time.Now().UTC()
	rec := Record{
		ID:            uuid.NewString(),
		UserID:        userID,
		TaxYear:       s.TaxYear,
		Status:        engine.State(),
		SchemaVersion: interview.SnapshotVersion,
		Payload:       engine.Snapshot(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return StartResult{}, err
	}

	metrics.IncInterviewStarted()
	return StartResult{
		SessionID: rec.ID,
		TaxYear:   rec.TaxYear,
		Questions: questions,
	}, nil
}

// Answer records an answer on the user's current session.
func (s *Service) Answer(ctx context.Context, userID, questionID string, value any) (interview.StepResult, error) {
	rec, engine, err := s.load(ctx, userID)
	if err != nil {
		return interview.StepResult{}, err
	}

	started := time.Now()
	res, err := engine.Answer(questionID, value)
	if err != nil {
		return interview.StepResult{}, err
	}
	metrics.IncAnswersRecorded()
	metrics.IncRebuild()
	metrics.ObserveRebuildDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	if res.Completed {
		metrics.IncInterviewCompleted()
	}

	if err := s.persist(ctx, rec, engine); err != nil {
		return interview.StepResult{}, err
	}
	return res, nil
}

// Skip records a null answer on the user's current session.
func (s *Service) Skip(ctx context.Context, userID, questionID string) error {
	rec, engine, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := engine.Skip(questionID); err != nil {
		return err
	}
	metrics.IncAnswersRecorded()
	return s.persist(ctx, rec, engine)
}

// Reset returns the user's current session to NOT_STARTED.
func (s *Service) Reset(ctx context.Context, userID string) error {
	rec, engine, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	engine.Reset()
	return s.persist(ctx, rec, engine)
}

// Progress returns the user's interview progress percentage.
func (s *Service) Progress(ctx context.Context, userID string) (float64, error) {
	_, engine, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return engine.Progress(), nil
}

// Summary returns the answers-and-recommendations summary for the user.
func (s *Service) Summary(ctx context.Context, userID string) (interview.Summary, error) {
	_, engine, err := s.load(ctx, userID)
	if err != nil {
		return interview.Summary{}, err
	}
	return engine.Summary(), nil
}

// PendingQuestions returns the user's surfaced-but-unanswered queue.
func (s *Service) PendingQuestions(ctx context.Context, userID string) ([]interview.Question, error) {
	_, engine, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return engine.PendingQuestions(), nil
}

func (s *Service) load(ctx context.Context, userID string) (Record, *interview.Session, error) {
	if strings.TrimSpace(userID) == "" {
		return Record{}, nil, ErrInvalidInput
	}
	rec, err := s.Repo.GetCurrentByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, nil, ErrNotFound
		}
		return Record{}, nil, err
	}
	return rec, interview.Restore(s.Catalog, rec.Payload), nil
}

func (s *Service) persist(ctx context.Context, rec Record, engine *interview.Session) error {
	rec.Status = engine.State()
	rec.SchemaVersion = interview.SnapshotVersion
	rec.Payload = engine.Snapshot()
	rec.UpdatedAt = time.Now().UTC()
	return s.Repo.Update(ctx, rec)
}
