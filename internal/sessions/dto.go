package sessions

import (
	"taxprep-backend/internal/interview"
	"taxprep-backend/internal/interview/recommendations"
)

type questionResponse struct {
	ID       string   `json:"id"`
	Prompt   string   `json:"prompt"`
	Kind     string   `json:"kind"`
	Category string   `json:"category"`
	Choices  []string `json:"choices,omitempty"`
	Help     string   `json:"help,omitempty"`
	Required bool     `json:"required"`
}

func toQuestionResponses(qs []interview.Question) []questionResponse {
	out := make([]questionResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, questionResponse{
			ID:       q.ID,
			Prompt:   q.Prompt,
			Kind:     string(q.Kind),
			Category: q.Category,
			Choices:  q.Choices,
			Help:     q.Help,
			Required: q.Required,
		})
	}
	return out
}

type startResponse struct {
	SessionID string             `json:"sessionId"`
	TaxYear   int                `json:"taxYear"`
	Questions []questionResponse `json:"questions"`
}

type answerRequest struct {
	QuestionID string `json:"questionId"`
	Value      any    `json:"value"`
}

type skipRequest struct {
	QuestionID string `json:"questionId"`
}

type stepResponse struct {
	NextQuestions   []questionResponse               `json:"nextQuestions"`
	Recommendations []recommendations.Recommendation `json:"recommendations"`
	Completed       bool                             `json:"completed"`
}
