package interview

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog is the read-only set of interview questions in definition order.
type Catalog struct {
	order []string
	byID  map[string]Question
}

type catalogFile struct {
	Questions []Question `json:"questions"`
}

// Load reads question definitions from a JSON file. It fails soft: on any
// read, parse, or validation error the built-in catalog is returned along
// with the error so the caller can log the fallback. The returned catalog
// is never nil.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("load catalog %s: %w", path, err)
	}
	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return Default(), fmt.Errorf("load catalog %s: %w", path, err)
	}
	c, err := newCatalog(file.Questions)
	if err != nil {
		return Default(), fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Default returns the built-in question catalog.
func Default() *Catalog {
	c, err := newCatalog(builtinQuestions())
	if err != nil {
		// The built-in set is validated by tests; a failure here is a bug.
		panic(err)
	}
	return c
}

func newCatalog(questions []Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog has no questions")
	}
	c := &Catalog{
		order: make([]string, 0, len(questions)),
		byID:  make(map[string]Question, len(questions)),
	}
	for _, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question with empty id")
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		c.byID[q.ID] = q
		c.order = append(c.order, q.ID)
	}
	for _, q := range c.byID {
		if q.DependsOn != nil {
			if _, ok := c.byID[q.DependsOn.QuestionID]; !ok {
				return nil, fmt.Errorf("question %q depends on unknown question %q", q.ID, q.DependsOn.QuestionID)
			}
		}
		for _, f := range q.FollowUps {
			if _, ok := c.byID[f]; !ok {
				return nil, fmt.Errorf("question %q lists unknown follow-up %q", q.ID, f)
			}
		}
	}
	return c, nil
}

// Get returns the question with the given id.
func (c *Catalog) Get(id string) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Len returns the number of questions in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// All returns every question in definition order.
func (c *Catalog) All() []Question {
	out := make([]Question, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Roots returns the questions with no conditional dependency, in
// definition order. These are the questions surfaced at interview start.
func (c *Catalog) Roots() []Question {
	out := make([]Question, 0, len(c.order))
	for _, id := range c.order {
		q := c.byID[id]
		if q.DependsOn == nil {
			out = append(out, q)
		}
	}
	return out
}

func builtinQuestions() []Question {
	return []Question{
		{
			ID:       "income_employment",
			Prompt:   "Did you receive wages from an employer this tax year?",
			Kind:     KindYesNo,
			Category: CategoryIncome,
			Help:     "Answer yes if you received a W-2 from any employer.",
			Required: true,
			FollowUps: []string{
				"income_multiple_jobs",
			},
		},
		{
			ID:        "income_multiple_jobs",
			Prompt:    "Did you have more than one employer?",
			Kind:      KindYesNo,
			Category:  CategoryIncome,
			Help:      "Multiple W-2s can affect your withholding.",
			DependsOn: &Dependency{QuestionID: "income_employment", Equals: true},
		},
		{
			ID:       "income_self_employment",
			Prompt:   "Did you earn self-employment or freelance income?",
			Kind:     KindYesNo,
			Category: CategoryIncome,
			Help:     "Includes contract work, gig income, and business income reported on 1099-NEC.",
			Required: true,
			FollowUps: []string{
				"self_employment_expenses",
			},
		},
		{
			ID:        "self_employment_expenses",
			Prompt:    "Roughly how much did you spend on business expenses?",
			Kind:      KindNumeric,
			Category:  CategoryIncome,
			Help:      "Deductible expenses reduce self-employment tax.",
			DependsOn: &Dependency{QuestionID: "income_self_employment", Equals: true},
		},
		{
			ID:       "income_investments",
			Prompt:   "Did you earn interest, dividends, or sell investments?",
			Kind:     KindYesNo,
			Category: CategoryIncome,
			Required: true,
		},
		{
			ID:       "income_crypto",
			Prompt:   "Did you sell, exchange, or otherwise dispose of cryptocurrency?",
			Kind:     KindYesNo,
			Category: CategoryIncome,
			Help:     "Digital asset transactions must be reported even without a 1099.",
			Required: true,
		},
		{
			ID:       "foreign_income",
			Prompt:   "Did you have foreign income or foreign financial accounts?",
			Kind:     KindYesNo,
			Category: CategoryForeign,
			Help:     "Foreign accounts over $10,000 require an FBAR filing.",
		},
		{
			ID:       "deduction_mortgage",
			Prompt:   "Did you pay mortgage interest on your home?",
			Kind:     KindYesNo,
			Category: CategoryDeductions,
		},
		{
			ID:       "deduction_medical",
			Prompt:   "Did you have significant out-of-pocket medical expenses?",
			Kind:     KindYesNo,
			Category: CategoryDeductions,
			Help:     "Only expenses above 7.5% of adjusted gross income are deductible.",
		},
		{
			ID:       "deduction_charitable",
			Prompt:   "Did you donate money or goods to charity?",
			Kind:     KindYesNo,
			Category: CategoryDeductions,
		},
		{
			ID:       "dependents_children",
			Prompt:   "Do you have dependent children?",
			Kind:     KindYesNo,
			Category: CategoryFamily,
			Required: true,
			FollowUps: []string{
				"dependents_childcare",
			},
		},
		{
			ID:        "dependents_childcare",
			Prompt:    "Did you pay for childcare so you could work?",
			Kind:      KindYesNo,
			Category:  CategoryFamily,
			DependsOn: &Dependency{QuestionID: "dependents_children", Equals: true},
		},
		{
			ID:       "education_expenses",
			Prompt:   "Did you or a dependent pay tuition or education expenses?",
			Kind:     KindYesNo,
			Category: CategoryEducation,
		},
	}
}
