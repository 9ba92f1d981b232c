package recommendations

// formInfo carries the static metadata attached to a recommended form.
type formInfo struct {
	category         string
	requiredFields   []string
	estimatedMinutes int
	helpResources    []string
}

var formCatalog = map[string]formInfo{
	"Form 1040": {
		category:         CategoryGeneral,
		requiredFields:   []string{"filing_status", "ssn", "address", "dependents"},
		estimatedMinutes: 30,
		helpResources:    []string{"https://www.irs.gov/forms-pubs/about-form-1040"},
	},
	"W-2 Income": {
		category:         CategoryIncome,
		requiredFields:   []string{"employer_ein", "wages_box1", "federal_withholding_box2"},
		estimatedMinutes: 10,
		helpResources:    []string{"https://www.irs.gov/forms-pubs/about-form-w-2"},
	},
	"Schedule C": {
		category:         CategoryIncome,
		requiredFields:   []string{"business_name", "gross_receipts", "expenses"},
		estimatedMinutes: 45,
		helpResources:    []string{"https://www.irs.gov/forms-pubs/about-schedule-c-form-1040"},
	},
	"Schedule SE": {
		category:         CategoryIncome,
		requiredFields:   []string{"net_self_employment_earnings"},
		estimatedMinutes: 15,
		helpResources:    []string{"https://www.irs.gov/forms-pubs/about-schedule-se-form-1040"},
	},
	"Schedule B": {
		category:         CategoryInvestments,
		requiredFields:   []string{"payer_names", "interest_amounts", "dividend_amounts"},
		estimatedMinutes: 15,
		helpResources:    []string{"https://www.irs.gov/forms-pubs/about-schedule-b-form-1040"},
	},
	"Schedule D": {
		category:         CategoryInvestments,
		requiredFields:   []string{"proceeds", "cost_basis", "holding_periods"},
		estimatedMinutes: 30,
		helpResources:    []string{"https://www.irs.gov/forms-pubs/about-schedule-d-form-1040"},
	},
	"Form 8949": {
		category:         CategoryCrypto,
		requiredFields:   []string{"asset_description", "date_acquired", "date_sold", "proceeds", "cost_basis"},
		estimatedMinutes: 40,
		helpResources:    []string{"https://www.irs.gov/forms-pubs/about-form-8949"},
	},
	"FinCEN Form 114 (FBAR)": {
		category:         CategoryForeign,
		requiredFields:   []string{"account_numbers", "bank_names", "max_balances"},
		estimatedMinutes: 25,
		helpResources:    []string{"https://www.fincen.gov/report-foreign-bank-and-financial-accounts"},
	},
	"Schedule A": {
		category:         CategoryDeductions,
		requiredFields:   []string{"mortgage_interest", "medical_expenses", "charitable_contributions", "state_taxes_paid"},
		estimatedMinutes: 35,
		helpResources:    []string{"https://www.irs.gov/forms-pubs/about-schedule-a-form-1040"},
	},
	"Schedule 8812": {
		category:         CategoryCredits,
		requiredFields:   []string{"child_names", "child_ssns", "child_birth_years"},
		estimatedMinutes: 20,
		helpResources:    []string{"https://www.irs.gov/forms-pubs/about-schedule-8812-form-1040"},
	},
	"Form 2441": {
		category:         CategoryCredits,
		requiredFields:   []string{"provider_name", "provider_ein", "care_expenses"},
		estimatedMinutes: 20,
		helpResources:    []string{"https://www.irs.gov/forms-pubs/about-form-2441"},
	},
	"Form 8863": {
		category:         CategoryEducation,
		requiredFields:   []string{"institution_ein", "tuition_paid", "form_1098t"},
		estimatedMinutes: 25,
		helpResources:    []string{"https://www.irs.gov/forms-pubs/about-form-8863"},
	},
}

// build assembles a Recommendation from the form catalog. Unknown forms get
// empty metadata rather than failing; the rule table is the source of truth
// for which forms exist.
func build(form string, priority int, reason string) Recommendation {
	info := formCatalog[form]
	return Recommendation{
		Form:             form,
		Category:         info.category,
		Priority:         clampPriority(priority),
		Reason:           reason,
		RequiredFields:   info.requiredFields,
		EstimatedMinutes: info.estimatedMinutes,
		HelpResources:    info.helpResources,
	}
}

func clampPriority(p int) int {
	if p < 1 {
		return 1
	}
	if p > 10 {
		return 10
	}
	return p
}
