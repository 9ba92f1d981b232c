package sessions

import (
	"context"
	"errors"
	"testing"

	"taxprep-backend/internal/interview"
)

func newTestService() *Service {
	return &Service{
		Catalog: interview.Default(),
		Repo:    NewMemoryRepo(),
		TaxYear: 2025,
	}
}

func TestServiceStartAnswerFlow(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	start, err := svc.Start(ctx, "guest:alice")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if start.SessionID == "" {
		t.Fatalf("expected session id")
	}
	if len(start.Questions) == 0 {
		t.Fatalf("expected root questions")
	}

	res, err := svc.Answer(ctx, "guest:alice", "income_employment", true)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	found := false
	for _, q := range res.NextQuestions {
		if q.ID == "income_multiple_jobs" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected follow-up in queue")
	}

	// State must survive the round trip through the repo.
	progress, err := svc.Progress(ctx, "guest:alice")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress <= 0 {
		t.Fatalf("expected positive progress, got %v", progress)
	}

	sum, err := svc.Summary(ctx, "guest:alice")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalQuestionsAnswered != 1 {
		t.Fatalf("expected 1 answer in summary, got %d", sum.TotalQuestionsAnswered)
	}
	if sum.TotalRecommendations == 0 {
		t.Fatalf("expected recommendations in summary")
	}
}

func TestServiceAnswerWithoutSession(t *testing.T) {
	svc := newTestService()
	_, err := svc.Answer(context.Background(), "guest:bob", "income_employment", true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceUnknownQuestionKeepsState(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, "guest:carol"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Answer(ctx, "guest:carol", "income_employment", true); err != nil {
		t.Fatalf("answer: %v", err)
	}

	_, err := svc.Answer(ctx, "guest:carol", "bogus_question", true)
	if !errors.Is(err, interview.ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}

	// The failed call must not have persisted anything.
	sum, err := svc.Summary(ctx, "guest:carol")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalQuestionsAnswered != 1 {
		t.Fatalf("expected state unchanged after error, got %d answers", sum.TotalQuestionsAnswered)
	}
}

func TestServiceSkipAndReset(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, "guest:dave"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.Skip(ctx, "guest:dave", "income_employment"); err != nil {
		t.Fatalf("skip: %v", err)
	}
	progress, err := svc.Progress(ctx, "guest:dave")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress <= 0 {
		t.Fatalf("expected skip to count toward progress")
	}

	if err := svc.Reset(ctx, "guest:dave"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	progress, err = svc.Progress(ctx, "guest:dave")
	if err != nil {
		t.Fatalf("progress after reset: %v", err)
	}
	if progress != 0 {
		t.Fatalf("expected zero progress after reset, got %v", progress)
	}
}

func TestServiceStartReplacesPriorSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Start(ctx, "guest:erin")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Answer(ctx, "guest:erin", "income_crypto", true); err != nil {
		t.Fatalf("answer: %v", err)
	}

	second, err := svc.Start(ctx, "guest:erin")
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if second.SessionID == first.SessionID {
		t.Fatalf("expected a fresh session id")
	}
	sum, err := svc.Summary(ctx, "guest:erin")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalQuestionsAnswered != 0 {
		t.Fatalf("expected fresh session, got %d answers", sum.TotalQuestionsAnswered)
	}
}
