package interview

import (
	"fmt"
	"sort"

	"taxprep-backend/internal/interview/recommendations"
)

// State is the interview lifecycle state.
type State string

const (
	StateNotStarted State = "NOT_STARTED"
	StateInProgress State = "IN_PROGRESS"
	StateCompleted  State = "COMPLETED"
)

// StepResult is returned after each recorded answer. NextQuestions is the
// surfaced queue: every question asked but not yet answered, in the order
// it was surfaced.
type StepResult struct {
	NextQuestions   []Question                       `json:"nextQuestions"`
	Recommendations []recommendations.Recommendation `json:"recommendations"`
	Completed       bool                             `json:"completed"`
}

// Summary aggregates the state of an interview for reporting.
type Summary struct {
	TotalQuestionsAnswered int                              `json:"totalQuestionsAnswered"`
	TotalRecommendations   int                              `json:"totalRecommendations"`
	EstimatedTotalMinutes  int                              `json:"estimatedTotalMinutes"`
	Answers                []Answer                         `json:"answers"`
	Recommendations        []recommendations.Recommendation `json:"recommendations"`
}

// Session drives one interview over a read-only catalog. It owns the answer
// store, the surfaced-question queue, and the recommendation list for that
// interview, and must be used by at most one logical caller at a time;
// there is no internal locking.
type Session struct {
	catalog  *Catalog
	answers  *AnswerStore
	recs     []recommendations.Recommendation
	state    State
	pending  []string
	surfaced map[string]bool
}

// NewSession returns a session in the NOT_STARTED state.
func NewSession(catalog *Catalog) *Session {
	return &Session{
		catalog:  catalog,
		answers:  NewAnswerStore(),
		state:    StateNotStarted,
		surfaced: make(map[string]bool),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Catalog returns the catalog the session runs over.
func (s *Session) Catalog() *Catalog {
	return s.catalog
}

// Start clears all prior state, moves the session to IN_PROGRESS, and
// returns the questions with no conditional dependency in catalog order.
// These seed the surfaced queue.
func (s *Session) Start() []Question {
	s.answers.Clear()
	s.recs = nil
	s.pending = nil
	s.surfaced = make(map[string]bool)
	s.state = StateInProgress

	roots := s.catalog.Roots()
	for _, q := range roots {
		s.surfaced[q.ID] = true
		s.pending = append(s.pending, q.ID)
	}
	return roots
}

// Answer records a value for the question, removes it from the surfaced
// queue, enqueues any newly unlocked follow-ups, and rebuilds the
// recommendation list from scratch. The interview completes on the call
// that leaves no active question in the queue while recommendations are
// non-empty.
func (s *Session) Answer(questionID string, value any) (StepResult, error) {
	if s.state == StateNotStarted {
		return StepResult{}, ErrNotStarted
	}
	q, ok := s.catalog.Get(questionID)
	if !ok {
		return StepResult{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}

	s.answers.Record(q.ID, value)
	s.surfaced[q.ID] = true
	s.dequeue(q.ID)

	for _, follow := range FollowUps(s.catalog, q.ID, s.answers) {
		if s.surfaced[follow.ID] {
			continue
		}
		s.surfaced[follow.ID] = true
		s.pending = append(s.pending, follow.ID)
	}

	s.recs = recommendations.Rebuild(s.answers.Values())

	next := s.pendingQuestions()
	completed := len(next) == 0 && len(s.recs) > 0
	if completed {
		s.state = StateCompleted
	}
	return StepResult{
		NextQuestions:   next,
		Recommendations: s.recs,
		Completed:       completed,
	}, nil
}

// Skip records a nil answer for the question and removes it from the
// surfaced queue. The skip counts toward progress, but a nil value
// satisfies no dependency, so nothing gated on this question can activate.
// Follow-ups are not evaluated, but recommendations are rebuilt so a skip
// that voids an earlier real answer also retires the forms it triggered.
func (s *Session) Skip(questionID string) error {
	if s.state == StateNotStarted {
		return ErrNotStarted
	}
	q, ok := s.catalog.Get(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	s.answers.Record(q.ID, nil)
	s.surfaced[q.ID] = true
	s.dequeue(q.ID)
	s.recs = recommendations.Rebuild(s.answers.Values())
	return nil
}

// Reset returns the session to NOT_STARTED and clears all state.
func (s *Session) Reset() {
	s.answers.Clear()
	s.recs = nil
	s.pending = nil
	s.surfaced = make(map[string]bool)
	s.state = StateNotStarted
}

// Progress returns the percentage of catalog questions answered, capped at
// 100. The denominator counts every catalog question, including ones that
// can never activate under the current answers.
func (s *Session) Progress() float64 {
	total := s.catalog.Len()
	if total == 0 {
		return 0
	}
	pct := float64(s.answers.Len()) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Recommendations returns the most recently rebuilt recommendation list.
func (s *Session) Recommendations() []recommendations.Recommendation {
	return s.recs
}

// PendingQuestions returns the surfaced queue: questions asked but not yet
// answered, in surfacing order, restricted to ones still active under the
// current answers.
func (s *Session) PendingQuestions() []Question {
	return s.pendingQuestions()
}

// ActiveQuestions returns the catalog questions currently active under the
// recorded answers, in catalog order.
func (s *Session) ActiveQuestions() []Question {
	return ActiveQuestions(s.catalog, s.answers)
}

// Summary reports answered counts, recommendations, and the estimated time
// to complete all recommended forms.
func (s *Session) Summary() Summary {
	answers := s.answers.All()
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].QuestionID < answers[j].QuestionID
	})
	minutes := 0
	for _, r := range s.recs {
		minutes += r.EstimatedMinutes
	}
	return Summary{
		TotalQuestionsAnswered: s.answers.Len(),
		TotalRecommendations:   len(s.recs),
		EstimatedTotalMinutes:  minutes,
		Answers:                answers,
		Recommendations:        s.recs,
	}
}

func (s *Session) dequeue(questionID string) {
	for i, id := range s.pending {
		if id == questionID {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// pendingQuestions resolves the surfaced queue to questions that are still
// active under the current answers. An entry whose dependency was answered
// away stays in the raw queue so it resurfaces if the dependency flips
// back, but it is never returned while inactive.
func (s *Session) pendingQuestions() []Question {
	out := make([]Question, 0, len(s.pending))
	for _, id := range s.pending {
		q, ok := s.catalog.Get(id)
		if !ok || !IsActive(q, s.answers) {
			continue
		}
		out = append(out, q)
	}
	return out
}
