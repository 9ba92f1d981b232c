package interview

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func questionIDs(qs []Question) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func contains(qs []Question, id string) bool {
	for _, q := range qs {
		if q.ID == id {
			return true
		}
	}
	return false
}

func TestStartReturnsRootsInCatalogOrder(t *testing.T) {
	s := NewSession(Default())
	if s.State() != StateNotStarted {
		t.Fatalf("expected NOT_STARTED, got %s", s.State())
	}

	first := s.Start()
	if s.State() != StateInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", s.State())
	}
	for _, q := range first {
		if q.DependsOn != nil {
			t.Fatalf("start surfaced dependent question %q", q.ID)
		}
	}

	s.Reset()
	if s.State() != StateNotStarted {
		t.Fatalf("expected NOT_STARTED after reset, got %s", s.State())
	}
	second := s.Start()
	if !reflect.DeepEqual(questionIDs(first), questionIDs(second)) {
		t.Fatalf("reset+start changed the initial question set: %v vs %v", questionIDs(first), questionIDs(second))
	}
}

func TestAnswerBeforeStart(t *testing.T) {
	s := NewSession(Default())
	if _, err := s.Answer("income_employment", true); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

func TestAnswerUnknownQuestion(t *testing.T) {
	s := NewSession(Default())
	s.Start()
	if _, err := s.Answer("no_such_question", true); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
}

func TestEmploymentYesUnlocksMultipleJobs(t *testing.T) {
	s := NewSession(Default())
	s.Start()

	res, err := s.Answer("income_employment", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(res.NextQuestions, "income_multiple_jobs") {
		t.Fatalf("expected income_multiple_jobs in queue, got %v", questionIDs(res.NextQuestions))
	}
	if contains(res.NextQuestions, "income_employment") {
		t.Fatalf("answered question still queued")
	}
	found := false
	for _, r := range res.Recommendations {
		if r.Form == "W-2 Income" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected W-2 Income recommendation")
	}
	for _, q := range res.NextQuestions {
		if !IsActive(q, s.answers) {
			t.Fatalf("surfaced inactive question %q", q.ID)
		}
	}
}

func TestEmploymentNoKeepsMultipleJobsLocked(t *testing.T) {
	s := NewSession(Default())
	s.Start()

	res, err := s.Answer("income_employment", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contains(res.NextQuestions, "income_multiple_jobs") {
		t.Fatalf("income_multiple_jobs surfaced despite no answer")
	}
}

func TestAnswerIdempotent(t *testing.T) {
	s := NewSession(Default())
	s.Start()

	first, err := s.Answer("income_crypto", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Answer("income_crypto", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first.Recommendations, second.Recommendations) {
		t.Fatalf("repeated answer changed recommendations")
	}
	if !reflect.DeepEqual(questionIDs(first.NextQuestions), questionIDs(second.NextQuestions)) {
		t.Fatalf("repeated answer changed the queue")
	}
}

func TestSkipCountsTowardProgressAndStaysHidden(t *testing.T) {
	s := NewSession(Default())
	s.Start()

	before := s.Progress()
	if err := s.Skip("income_employment"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Progress() <= before {
		t.Fatalf("expected progress to increase after skip")
	}

	// A skipped yes/no gate never unlocks its follow-ups and does not
	// return to the queue.
	res, err := s.Answer("income_crypto", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contains(res.NextQuestions, "income_employment") || contains(res.NextQuestions, "income_multiple_jobs") {
		t.Fatalf("skipped question chain resurfaced: %v", questionIDs(res.NextQuestions))
	}
}

func TestDependencyFlipRemovesFollowUpFromQueue(t *testing.T) {
	s := NewSession(Default())
	s.Start()

	res, err := s.Answer("income_employment", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(res.NextQuestions, "income_multiple_jobs") {
		t.Fatalf("expected income_multiple_jobs queued, got %v", questionIDs(res.NextQuestions))
	}

	// Changing the gate to "no" deactivates the follow-up; it must not be
	// surfaced while its dependency is unmet.
	res, err = s.Answer("income_employment", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contains(res.NextQuestions, "income_multiple_jobs") {
		t.Fatalf("inactive follow-up still queued: %v", questionIDs(res.NextQuestions))
	}
	for _, q := range res.NextQuestions {
		if !IsActive(q, s.answers) {
			t.Fatalf("surfaced inactive question %q", q.ID)
		}
	}

	// Flipping back to "yes" resurfaces it without duplication.
	res, err = s.Answer("income_employment", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	for _, q := range res.NextQuestions {
		if q.ID == "income_multiple_jobs" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected income_multiple_jobs queued exactly once after flip back, got %d", count)
	}
}

func TestDependencyFlipDoesNotStrandCompletion(t *testing.T) {
	s := NewSession(Default())
	queue := s.Start()

	// Unlock the follow-up, then immediately lock it again. The interview
	// must still be completable without ever answering the follow-up.
	if _, err := s.Answer("income_employment", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := s.Answer("income_employment", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	queue = res.NextQuestions

	last := res
	for len(queue) > 0 {
		q := queue[0]
		res, err := s.Answer(q.ID, answerFor(q))
		if err != nil {
			t.Fatalf("answer %s: %v", q.ID, err)
		}
		queue = res.NextQuestions
		last = res
	}
	if !last.Completed {
		t.Fatalf("expected completion with the inactive follow-up unanswered")
	}
}

func TestSkipRetiresTriggeredRecommendations(t *testing.T) {
	s := NewSession(Default())
	s.Start()

	if _, err := s.Answer("income_employment", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, r := range s.Recommendations() {
		if r.Form == "W-2 Income" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected W-2 Income before skip")
	}

	// Skipping voids the earlier answer; the form it triggered goes away.
	if err := s.Skip("income_employment"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range s.Recommendations() {
		if r.Form == "W-2 Income" {
			t.Fatalf("W-2 Income survived a skip of its trigger")
		}
	}
	if len(s.Recommendations()) == 0 || s.Recommendations()[0].Form != "Form 1040" {
		t.Fatalf("expected Form 1040 to remain after skip")
	}
}

func answerFor(q Question) any {
	switch q.Kind {
	case KindYesNo:
		return true
	case KindNumeric:
		return float64(1200)
	default:
		return "n/a"
	}
}

func TestAnswerEverythingCompletes(t *testing.T) {
	s := NewSession(Default())
	queue := s.Start()

	var last StepResult
	for len(queue) > 0 {
		q := queue[0]
		res, err := s.Answer(q.ID, answerFor(q))
		if err != nil {
			t.Fatalf("answer %s: %v", q.ID, err)
		}
		if len(res.NextQuestions) > 0 && res.Completed {
			t.Fatalf("completed with a non-empty queue")
		}
		queue = res.NextQuestions
		last = res
	}

	if !last.Completed {
		t.Fatalf("expected completion on the call that emptied the queue")
	}
	if len(last.Recommendations) == 0 {
		t.Fatalf("expected recommendations at completion")
	}
	if s.State() != StateCompleted {
		t.Fatalf("expected COMPLETED, got %s", s.State())
	}
}

func TestProgressDenominatorIsFullCatalog(t *testing.T) {
	c := Default()
	s := NewSession(c)
	s.Start()

	if _, err := s.Answer("income_employment", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 1.0 / float64(c.Len()) * 100
	if got := s.Progress(); got != want {
		t.Fatalf("progress = %v, want %v", got, want)
	}
}

func TestSummaryAggregates(t *testing.T) {
	s := NewSession(Default())
	s.Start()
	if _, err := s.Answer("income_employment", true); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Answer("income_crypto", true); err != nil {
		t.Fatal(err)
	}

	sum := s.Summary()
	if sum.TotalQuestionsAnswered != 2 {
		t.Fatalf("expected 2 answers, got %d", sum.TotalQuestionsAnswered)
	}
	if sum.TotalRecommendations != len(s.Recommendations()) {
		t.Fatalf("summary recommendation count mismatch")
	}
	minutes := 0
	for _, r := range sum.Recommendations {
		minutes += r.EstimatedMinutes
	}
	if sum.EstimatedTotalMinutes != minutes {
		t.Fatalf("estimated minutes mismatch")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := Default()
	s := NewSession(c)
	s.Start()
	if _, err := s.Answer("income_employment", true); err != nil {
		t.Fatal(err)
	}
	if err := s.Skip("foreign_income"); err != nil {
		t.Fatal(err)
	}

	// Round-trip through JSON the way the sessions repo stores payloads.
	raw, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatal(err)
	}

	restored := Restore(c, snap)
	if restored.State() != s.State() {
		t.Fatalf("state mismatch after restore")
	}
	if restored.Progress() != s.Progress() {
		t.Fatalf("progress mismatch after restore")
	}
	if !reflect.DeepEqual(restored.Recommendations(), s.Recommendations()) {
		t.Fatalf("recommendations mismatch after restore")
	}
	if !reflect.DeepEqual(questionIDs(restored.PendingQuestions()), questionIDs(s.PendingQuestions())) {
		t.Fatalf("queue mismatch after restore")
	}

	// Re-answering on the restored session must not duplicate the already
	// surfaced follow-up in the queue.
	res, err := restored.Answer("income_employment", true)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, q := range res.NextQuestions {
		if q.ID == "income_multiple_jobs" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected income_multiple_jobs queued exactly once, got %d", count)
	}
}
