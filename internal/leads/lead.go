// Package leads hands accepted intake and appointment submissions to the
// follow-up pipeline. Acceptance never depends on the hand-off succeeding.
package leads

import (
	"time"

	"lawfirm-site/internal/appointment"
	"lawfirm-site/internal/intake"
	"lawfirm-site/internal/scoring"

	"github.com/google/uuid"
)

type Kind string

const (
	KindIntake      Kind = "intake"
	KindAppointment Kind = "appointment"
)

type Priority string

const (
	PriorityHigh     Priority = "priority"
	PriorityStandard Priority = "standard"
)

// Lead is one accepted submission queued for a human to follow up.
type Lead struct {
	ID          string               `json:"leadId"`
	Kind        Kind                 `json:"kind"`
	ReceivedAt  time.Time            `json:"receivedAt"`
	Priority    Priority             `json:"priority"`
	Intake      *intake.Submission   `json:"submission,omitempty"`
	Score       *scoring.CaseScore   `json:"caseScore,omitempty"`
	Appointment *appointment.Request `json:"appointment,omitempty"`
}

// NewIntakeLead builds a lead from a scored submission. High-value cases
// are marked for priority follow-up.
func NewIntakeLead(s intake.Submission, score scoring.CaseScore, now time.Time) Lead {
	priority := PriorityStandard
	if score.IsHighValue {
		priority = PriorityHigh
	}
	return Lead{
		ID:         uuid.NewString(),
		Kind:       KindIntake,
		ReceivedAt: now.UTC(),
		Priority:   priority,
		Intake:     &s,
		Score:      &score,
	}
}

func NewAppointmentLead(r appointment.Request, now time.Time) Lead {
	return Lead{
		ID:          uuid.NewString(),
		Kind:        KindAppointment,
		ReceivedAt:  now.UTC(),
		Priority:    PriorityStandard,
		Appointment: &r,
	}
}

// LogFields is the subset of a lead that is safe to log. Contact details
// are never included.
func (l Lead) LogFields() map[string]interface{} {
	fields := map[string]interface{}{
		"leadId":   l.ID,
		"kind":     string(l.Kind),
		"priority": string(l.Priority),
	}
	if l.Score != nil {
		fields["score"] = l.Score.Score
		fields["isHighValue"] = l.Score.IsHighValue
	}
	if l.Appointment != nil {
		fields["office"] = l.Appointment.Office
	}
	return fields
}
