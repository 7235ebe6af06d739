// Package appointment models consultation requests made through the
// three-step scheduler. Requests are accepted as submitted; there is no
// availability or double-booking check.
package appointment

// Request is one scheduler result.
type Request struct {
	Office   string `json:"office"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CaseType  string `json:"caseType"`
	Notes     string `json:"notes,omitempty"`
}

// OfficeLabel returns the display name for the chosen office, or the raw
// id when it is not in the catalog.
func (r Request) OfficeLabel() string {
	if o, ok := officeIndex[r.Office]; ok {
		return o.Name
	}
	return r.Office
}

// OtherOffice is the metric label for office ids outside the catalog.
const OtherOffice = "other"

// OfficeID returns the office id when it is in the catalog and
// OtherOffice otherwise.
func (r Request) OfficeID() string {
	if _, ok := officeIndex[r.Office]; ok {
		return r.Office
	}
	return OtherOffice
}
