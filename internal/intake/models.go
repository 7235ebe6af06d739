package intake

// Submission is one case-intake wizard result. Enum fields are carried as
// their option ids; an unknown or empty id is treated as neutral.
type Submission struct {
	AccidentType     string   `json:"accidentType"`
	InjuryTypes      []string `json:"injuryTypes"`
	InjurySeverity   string   `json:"injurySeverity"`
	AccidentDate     string   `json:"accidentDate"`
	AccidentLocation string   `json:"accidentLocation,omitempty"`
	AtFault          string   `json:"atFault"`
	HasAttorney      string   `json:"hasAttorney"`

	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	PreferredContact  string `json:"preferredContact,omitempty"`
	AdditionalDetails string `json:"additionalDetails,omitempty"`
}

// Normalize applies form defaults and collapses duplicate injury selections.
func (s Submission) Normalize() Submission {
	if s.PreferredContact == "" {
		s.PreferredContact = ContactPhone
	}
	if len(s.InjuryTypes) > 0 {
		seen := make(map[string]struct{}, len(s.InjuryTypes))
		unique := make([]string, 0, len(s.InjuryTypes))
		for _, id := range s.InjuryTypes {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
		s.InjuryTypes = unique
	}
	return s
}

// FullName joins the contact name fields.
func (s Submission) FullName() string {
	switch {
	case s.FirstName == "":
		return s.LastName
	case s.LastName == "":
		return s.FirstName
	default:
		return s.FirstName + " " + s.LastName
	}
}
