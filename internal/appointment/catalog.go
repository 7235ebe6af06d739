package appointment

import "time"

type Office struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

var Offices = []Office{
	{ID: "pinetop", Name: "Pinetop Office", Region: "White Mountains Region"},
	{ID: "chandler", Name: "Chandler Office", Region: "Phoenix Metro Area"},
}

var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
}

var CaseTypes = []string{
	"Commercial Truck Accident",
	"Semi-Truck Collision",
	"Severe Injury",
	"Traumatic Brain Injury",
	"Spinal Cord Injury",
	"Wrongful Death",
	"Other",
}

var officeIndex = func() map[string]Office {
	m := make(map[string]Office, len(Offices))
	for _, o := range Offices {
		m[o.ID] = o
	}
	return m
}()

// BookingWindowDays is how far ahead the calendar offers dates.
const BookingWindowDays = 30

// AvailableDates lists the selectable dates as YYYY-MM-DD: tomorrow through
// now+BookingWindowDays, weekends excluded. Dates are computed in now's location.
func AvailableDates(now time.Time) []string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dates := make([]string, 0, BookingWindowDays)
	for i := 1; i <= BookingWindowDays; i++ {
		d := today.AddDate(0, 0, i)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}

// Catalog is the option set served to the scheduler.
type Catalog struct {
	Offices        []Office `json:"offices"`
	TimeSlots      []string `json:"timeSlots"`
	CaseTypes      []string `json:"caseTypes"`
	AvailableDates []string `json:"availableDates"`
}

func NewCatalog(now time.Time) Catalog {
	return Catalog{
		Offices:        Offices,
		TimeSlots:      TimeSlots,
		CaseTypes:      CaseTypes,
		AvailableDates: AvailableDates(now),
	}
}
