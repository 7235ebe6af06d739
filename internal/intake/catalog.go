package intake

// Option is one selectable answer. HighValue marks answers that raise the
// case score.
type Option struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	HighValue   bool   `json:"highValue"`
}

const (
	SeverityCatastrophic = "catastrophic"
	SeveritySevere       = "severe"
	SeverityModerate     = "moderate"
	SeverityMinor        = "minor"

	FaultNo      = "no"
	FaultPartial = "partial"
	FaultYes     = "yes"
	FaultUnsure  = "unsure"

	AnswerNo  = "no"
	AnswerYes = "yes"

	ContactPhone = "phone"
	ContactEmail = "email"
)

var AccidentTypes = []Option{
	{ID: "commercial-truck", Label: "Commercial Truck / 18-Wheeler", HighValue: true},
	{ID: "semi-truck", Label: "Semi-Truck / Tractor-Trailer", HighValue: true},
	{ID: "delivery-truck", Label: "Delivery Truck (FedEx, UPS, Amazon)", HighValue: true},
	{ID: "bus", Label: "Bus Accident", HighValue: true},
	{ID: "car-accident", Label: "Car Accident"},
	{ID: "motorcycle", Label: "Motorcycle Accident"},
	{ID: "pedestrian", Label: "Pedestrian Accident"},
	{ID: "other", Label: "Other"},
}

var InjuryTypes = []Option{
	{ID: "spinal", Label: "Spinal Cord Injury / Paralysis", HighValue: true},
	{ID: "tbi", Label: "Traumatic Brain Injury", HighValue: true},
	{ID: "burns", Label: "Severe Burns", HighValue: true},
	{ID: "amputation", Label: "Amputation / Loss of Limb", HighValue: true},
	{ID: "fractures", Label: "Multiple Fractures", HighValue: true},
	{ID: "internal", Label: "Internal Organ Damage", HighValue: true},
	{ID: "wrongful-death", Label: "Wrongful Death", HighValue: true},
	{ID: "soft-tissue", Label: "Soft Tissue / Whiplash"},
	{ID: "minor", Label: "Minor Injuries"},
	{ID: "other", Label: "Other"},
}

// Severities is ordered from most to least severe.
var Severities = []Option{
	{ID: SeverityCatastrophic, Label: "Catastrophic / Life-Altering", Description: "Permanent disability, paralysis, or significant impairment"},
	{ID: SeveritySevere, Label: "Severe", Description: "Extended hospitalization, surgery required, long-term treatment"},
	{ID: SeverityModerate, Label: "Moderate", Description: "Medical treatment needed, temporary disability"},
	{ID: SeverityMinor, Label: "Minor", Description: "Minor medical treatment, quick recovery expected"},
}

var FaultOptions = []Option{
	{ID: FaultNo, Label: "No"},
	{ID: FaultPartial, Label: "Partially"},
	{ID: FaultYes, Label: "Yes"},
	{ID: FaultUnsure, Label: "Unsure"},
}

var AttorneyOptions = []Option{
	{ID: AnswerNo, Label: "No"},
	{ID: AnswerYes, Label: "Yes"},
}

var ContactOptions = []Option{
	{ID: ContactPhone, Label: "Phone"},
	{ID: ContactEmail, Label: "Email"},
}

var (
	accidentIndex = index(AccidentTypes)
	injuryIndex   = index(InjuryTypes)
)

func index(opts []Option) map[string]Option {
	m := make(map[string]Option, len(opts))
	for _, o := range opts {
		m[o.ID] = o
	}
	return m
}

// IsHighValueAccident reports whether id names a high-value accident type.
// Unknown ids are not high value.
func IsHighValueAccident(id string) bool {
	return accidentIndex[id].HighValue
}

func IsHighValueInjury(id string) bool {
	return injuryIndex[id].HighValue
}

// Catalog is the option set served to the intake form.
type Catalog struct {
	AccidentTypes   []Option `json:"accidentTypes"`
	InjuryTypes     []Option `json:"injuryTypes"`
	Severities      []Option `json:"severities"`
	FaultOptions    []Option `json:"faultOptions"`
	AttorneyOptions []Option `json:"attorneyOptions"`
	ContactOptions  []Option `json:"contactOptions"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		AccidentTypes:   AccidentTypes,
		InjuryTypes:     InjuryTypes,
		Severities:      Severities,
		FaultOptions:    FaultOptions,
		AttorneyOptions: AttorneyOptions,
		ContactOptions:  ContactOptions,
	}
}
