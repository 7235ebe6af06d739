package appointment

import (
	"lawfirm-site/internal/common/validation"
	"lawfirm-site/internal/wizard"
)

const WizardName = "appointment"

// Gate holds the scheduler steps: slot, contact details, review.
var Gate = wizard.NewGate[Request](WizardName,
	func(r Request) bool {
		return validation.AllPresent(r.Office, r.TimeSlot) && validation.ParseableDate(r.Date)
	},
	func(r Request) bool {
		return validation.AllPresent(r.FirstName, r.LastName, r.Email, r.Phone, r.CaseType)
	},
	wizard.Always[Request],
)
