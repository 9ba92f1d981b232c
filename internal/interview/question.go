package interview

import "time"

// Kind tags the answer variant a question expects.
type Kind string

const (
	KindYesNo          Kind = "yes_no"
	KindMultipleChoice Kind = "multiple_choice"
	KindNumeric        Kind = "numeric"
	KindText           Kind = "text"
	KindDate           Kind = "date"
)

// Question categories used for grouping in the UI and in recommendations.
const (
	CategoryIncome     = "income"
	CategoryDeductions = "deductions"
	CategoryCredits    = "credits"
	CategoryForeign    = "foreign"
	CategoryEducation  = "education"
	CategoryFamily     = "family"
)

// Dependency gates a question on a prior answer. The question is askable
// only when the referenced question has a recorded answer equal to Equals.
type Dependency struct {
	QuestionID string `json:"question"`
	Equals     any    `json:"equals"`
}

// Question is an immutable interview question definition. Choices is only
// meaningful for multiple-choice questions.
type Question struct {
	ID        string      `json:"id"`
	Prompt    string      `json:"prompt"`
	Kind      Kind        `json:"kind"`
	Category  string      `json:"category"`
	Choices   []string    `json:"choices,omitempty"`
	Help      string      `json:"help,omitempty"`
	Required  bool        `json:"required"`
	DependsOn *Dependency `json:"dependsOn,omitempty"`
	FollowUps []string    `json:"followUps,omitempty"`
}

// Answer records the response to a single question. Value is nil for a
// skipped question, which leaves any dependency on it unmet.
type Answer struct {
	QuestionID string    `json:"questionId"`
	Value      any       `json:"value"`
	RecordedAt time.Time `json:"recordedAt"`
	Confidence float64   `json:"confidence"`
}
