package taxpayers

import "time"

// Filing statuses accepted on a profile.
const (
	FilingSingle          = "single"
	FilingMarriedJoint    = "married_joint"
	FilingMarriedSeparate = "married_separate"
	FilingHeadOfHousehold = "head_of_household"
)

// Profile is the taxpayer data attached to an authenticated user.
type Profile struct {
	UserID       string    `json:"userId"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	FilingStatus string    `json:"filingStatus"`
	Dependents   int       `json:"dependents"`
	State        string    `json:"state"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidFilingStatus reports whether the given status is one of the accepted
// filing statuses.
func ValidFilingStatus(status string) bool {
	switch status {
	case FilingSingle, FilingMarriedJoint, FilingMarriedSeparate, FilingHeadOfHousehold:
		return true
	default:
		return false
	}
}
