package recommendations

// rule maps a predicate over the raw answers to a single form
// recommendation. Predicates read only the answer snapshot, never other
// recommendations, so evaluation order does not affect the result set.
// A predicate that panics on a malformed answer is skipped by the engine.
type rule struct {
	form     string
	priority int
	reason   string
	when     func(answers map[string]any) bool
}

// ruleTable is the fixed set of predicate to form mappings. "Form 1040" is
// not listed here; the engine appends it unconditionally before any rule
// runs.
var ruleTable = []rule{
	{
		form:     "W-2 Income",
		priority: 9,
		reason:   "You reported W-2 income from an employer.",
		when: func(a map[string]any) bool {
			return yes(a, "income_employment")
		},
	},
	{
		form:     "Schedule C",
		priority: 9,
		reason:   "You reported self-employment income.",
		when: func(a map[string]any) bool {
			return yes(a, "income_self_employment")
		},
	},
	{
		form:     "Schedule SE",
		priority: 8,
		reason:   "Self-employment income is subject to self-employment tax.",
		when: func(a map[string]any) bool {
			return yes(a, "income_self_employment")
		},
	},
	{
		form:     "Schedule B",
		priority: 7,
		reason:   "You reported interest or dividend income.",
		when: func(a map[string]any) bool {
			return yes(a, "income_investments")
		},
	},
	{
		form:     "Schedule D",
		priority: 7,
		reason:   "Investment sales require capital gain reporting.",
		when: func(a map[string]any) bool {
			return yes(a, "income_investments") || yes(a, "income_crypto")
		},
	},
	{
		form:     "Form 8949",
		priority: 8,
		reason:   "Cryptocurrency disposals must be reported on Form 8949.",
		when: func(a map[string]any) bool {
			return yes(a, "income_crypto")
		},
	},
	{
		form:     "FinCEN Form 114 (FBAR)",
		priority: 8,
		reason:   "Foreign income or accounts may require an FBAR filing.",
		when: func(a map[string]any) bool {
			return yes(a, "foreign_income")
		},
	},
	{
		form:     "Schedule A",
		priority: 7,
		reason:   "Your mortgage, medical, or charitable expenses may be worth itemizing.",
		when: func(a map[string]any) bool {
			return yes(a, "deduction_mortgage") || yes(a, "deduction_medical") || yes(a, "deduction_charitable")
		},
	},
	{
		form:     "Schedule 8812",
		priority: 8,
		reason:   "Dependent children may qualify you for the Child Tax Credit.",
		when: func(a map[string]any) bool {
			return yes(a, "dependents_children")
		},
	},
	{
		form:     "Form 2441",
		priority: 6,
		reason:   "Childcare expenses may qualify for the dependent care credit.",
		when: func(a map[string]any) bool {
			return yes(a, "dependents_childcare")
		},
	},
	{
		form:     "Form 8863",
		priority: 6,
		reason:   "Education expenses may qualify for an education credit.",
		when: func(a map[string]any) bool {
			return yes(a, "education_expenses")
		},
	},
}

// yes reports whether the question was answered true. A missing or nil
// (skipped) answer is false. A present answer of any non-bool type panics,
// which the engine absorbs as a skipped rule.
func yes(answers map[string]any, questionID string) bool {
	v, ok := answers[questionID]
	if !ok || v == nil {
		return false
	}
	return v.(bool)
}
