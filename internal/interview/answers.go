package interview

import "time"

const defaultConfidence = 1.0

// AnswerStore holds the recorded answers for one interview session. It is
// not safe for concurrent use; the engine expects a single logical caller.
type AnswerStore struct {
	byID map[string]Answer
}

// NewAnswerStore returns an empty store.
func NewAnswerStore() *AnswerStore {
	return &AnswerStore{byID: make(map[string]Answer)}
}

// Record stores an answer, overwriting any prior answer to the question.
func (s *AnswerStore) Record(questionID string, value any) {
	s.byID[questionID] = Answer{
		QuestionID: questionID,
		Value:      value,
		RecordedAt: time.Now().UTC(),
		Confidence: defaultConfidence,
	}
}

// Get returns the recorded answer for a question.
func (s *AnswerStore) Get(questionID string) (Answer, bool) {
	a, ok := s.byID[questionID]
	return a, ok
}

// Len returns the number of answered questions (skips included).
func (s *AnswerStore) Len() int {
	return len(s.byID)
}

// Clear removes all recorded answers.
func (s *AnswerStore) Clear() {
	s.byID = make(map[string]Answer)
}

// Values returns a snapshot of question id to answer value. Recommendation
// rules read this snapshot rather than the store itself.
func (s *AnswerStore) Values() map[string]any {
	out := make(map[string]any, len(s.byID))
	for id, a := range s.byID {
		out[id] = a.Value
	}
	return out
}

// All returns every recorded answer.
func (s *AnswerStore) All() []Answer {
	out := make([]Answer, 0, len(s.byID))
	for _, a := range s.byID {
		out = append(out, a)
	}
	return out
}
