package validation

import (
	"strings"
	"time"
)

// Present reports whether s was filled in. Content is not inspected, so a
// whitespace-only answer counts.
func Present(s string) bool {
	return s != ""
}

// AllPresent reports whether every value is Present.
func AllPresent(values ...string) bool {
	for _, v := range values {
		if !Present(v) {
			return false
		}
	}
	return true
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
}

// ParseDate accepts the date formats produced by browser date inputs and
// JSON-encoded timestamps.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseableDate is ParseDate without the value.
func ParseableDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}
