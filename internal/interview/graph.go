package interview

// IsActive reports whether a question may be surfaced given the current
// answers. A question with no dependency is always active. A dependent
// question is active only when its dependency has a recorded answer equal
// to the required value, compared strictly with no coercion across types.
func IsActive(q Question, answers *AnswerStore) bool {
	if q.DependsOn == nil {
		return true
	}
	recorded, ok := answers.Get(q.DependsOn.QuestionID)
	if !ok {
		return false
	}
	return valuesEqual(recorded.Value, q.DependsOn.Equals)
}

// valuesEqual compares an answer value against a dependency's required
// value. Values of different dynamic types never match; a nil (skipped)
// answer matches nothing.
func valuesEqual(answer, required any) bool {
	if answer == nil || required == nil {
		return false
	}
	switch a := answer.(type) {
	case bool:
		r, ok := required.(bool)
		return ok && a == r
	case string:
		r, ok := required.(string)
		return ok && a == r
	case float64:
		r, ok := required.(float64)
		return ok && a == r
	case int:
		r, ok := required.(int)
		return ok && a == r
	default:
		return false
	}
}

// ActiveQuestions walks the catalog and returns every question whose
// dependency is satisfied under the given answers, in definition order.
// It is a pure function of the catalog and the answer set, usable without
// any session state.
func ActiveQuestions(c *Catalog, answers *AnswerStore) []Question {
	out := make([]Question, 0, c.Len())
	for _, q := range c.All() {
		if IsActive(q, answers) {
			out = append(out, q)
		}
	}
	return out
}

// FollowUps returns the follow-up questions of the given question that are
// active under the current answers, in the order they are listed on the
// question. Unknown ids are skipped.
func FollowUps(c *Catalog, questionID string, answers *AnswerStore) []Question {
	q, ok := c.Get(questionID)
	if !ok {
		return nil
	}
	out := make([]Question, 0, len(q.FollowUps))
	for _, id := range q.FollowUps {
		follow, ok := c.Get(id)
		if !ok {
			continue
		}
		if IsActive(follow, answers) {
			out = append(out, follow)
		}
	}
	return out
}
