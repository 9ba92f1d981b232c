package recommendations

// Recommendation is a suggested tax form with priority and rationale.
// Priority is a closed interval [1, 10]; 10 is most important.
type Recommendation struct {
	Form             string   `json:"form"`
	Category         string   `json:"category"`
	Priority         int      `json:"priority"`
	Reason           string   `json:"reason"`
	RequiredFields   []string `json:"requiredFields"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	HelpResources    []string `json:"helpResources"`
}

// Recommendation categories.
const (
	CategoryGeneral     = "GENERAL"
	CategoryIncome      = "INCOME"
	CategoryInvestments = "INVESTMENTS"
	CategoryCrypto      = "CRYPTO"
	CategoryDeductions  = "DEDUCTIONS"
	CategoryCredits     = "CREDITS"
	CategoryForeign     = "FOREIGN"
	CategoryEducation   = "EDUCATION"
)
