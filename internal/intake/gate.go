package intake

import (
	"lawfirm-site/internal/common/validation"
	"lawfirm-site/internal/wizard"
)

const WizardName = "intake"

// Gate holds the four intake steps: accident, injuries, circumstances, contact.
var Gate = wizard.NewGate[Submission](WizardName,
	func(s Submission) bool {
		return validation.Present(s.AccidentType)
	},
	func(s Submission) bool {
		return len(s.InjuryTypes) > 0 && validation.Present(s.InjurySeverity)
	},
	func(s Submission) bool {
		return validation.ParseableDate(s.AccidentDate) &&
			validation.AllPresent(s.AtFault, s.HasAttorney)
	},
	func(s Submission) bool {
		return validation.AllPresent(s.FirstName, s.LastName, s.Email, s.Phone)
	},
)
