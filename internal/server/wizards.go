package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lawfirm-site/internal/appointment"
	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/metrics"
	"lawfirm-site/internal/intake"
	"lawfirm-site/internal/leads"
	"lawfirm-site/internal/scoring"
	"lawfirm-site/internal/wizard"
)

// intakeConfirmation is the payload behind an intake ticket.
type intakeConfirmation struct {
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	CaseAnalysis scoring.CaseScore `json:"caseAnalysis"`
}

type stepResponse struct {
	Step       int  `json:"step"`
	CanAdvance bool `json:"canAdvance"`
}

type submitResponse struct {
	Ticket          string `json:"ticket"`
	ConfirmationURL string `json:"confirmationUrl"`
}

func parseStep(r *http.Request) (int, error) {
	step, err := strconv.Atoi(r.PathValue("step"))
	if err != nil {
		return 0, errors.NewParseError(fmt.Errorf("step %q: %w", r.PathValue("step"), err))
	}
	return step, nil
}

func confirmationURL(path, ticket string) string {
	return path + "?" + url.Values{"ticket": {ticket}}.Encode()
}

// ==========================
// Intake
// ==========================

func (s *Server) intakeOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, intake.DefaultCatalog())
}

func (s *Server) intakeStep(w http.ResponseWriter, r *http.Request) {
	step, err := parseStep(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var sub intake.Submission
	if err := decodeBody(w, r, &sub); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stepResponse{Step: step, CanAdvance: intake.Gate.CanAdvance(step, sub)})
}

func (s *Server) submitIntake(w http.ResponseWriter, r *http.Request) {
	var sub intake.Submission
	if err := decodeBody(w, r, &sub); err != nil {
		s.writeError(w, r, err)
		return
	}

	release, err := s.opts.Guard.Acquire(r.Context(), intake.WizardName, r.Header.Get(wizardSessionHeader))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer release()

	sub = sub.Normalize()
	if step, incomplete := intake.Gate.FirstIncomplete(sub); incomplete {
		s.writeError(w, r, errors.NewStepIncompleteError(intake.WizardName, step))
		return
	}

	score := s.opts.Scorer.Score(sub)

	// Leads are queued only after the ticket is issued.
	ticket, err := s.handOff(r.Context(), wizard.KindIntake, intakeConfirmation{
		FirstName:    sub.FirstName,
		LastName:     sub.LastName,
		Email:        sub.Email,
		Phone:        sub.Phone,
		CaseAnalysis: score,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	metrics.IntakeSubmissions.WithLabelValues(strconv.FormatBool(score.IsHighValue)).Inc()
	metrics.IntakeScore.Observe(float64(score.Score))
	s.opts.Leads.Accept(r.Context(), leads.NewIntakeLead(sub, score, s.now()))

	writeJSON(w, http.StatusCreated, submitResponse{
		Ticket:          ticket,
		ConfirmationURL: confirmationURL("/intake/confirmation", ticket),
	})
}

func (s *Server) intakeConfirmation(w http.ResponseWriter, r *http.Request) {
	var data intakeConfirmation
	if !s.consumeTicket(w, r, wizard.KindIntake, &data, "/intake") {
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// ==========================
// Appointment
// ==========================

func (s *Server) appointmentOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, appointment.NewCatalog(s.now()))
}

func (s *Server) appointmentStep(w http.ResponseWriter, r *http.Request) {
	step, err := parseStep(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req appointment.Request
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stepResponse{Step: step, CanAdvance: appointment.Gate.CanAdvance(step, req)})
}

func (s *Server) submitAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointment.Request
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	release, err := s.opts.Guard.Acquire(r.Context(), appointment.WizardName, r.Header.Get(wizardSessionHeader))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer release()

	if step, incomplete := appointment.Gate.FirstIncomplete(req); incomplete {
		s.writeError(w, r, errors.NewStepIncompleteError(appointment.WizardName, step))
		return
	}

	ticket, err := s.handOff(r.Context(), wizard.KindAppointment, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	metrics.AppointmentRequests.WithLabelValues(req.OfficeID()).Inc()
	s.opts.Leads.Accept(r.Context(), leads.NewAppointmentLead(req, s.now()))
	writeJSON(w, http.StatusCreated, submitResponse{
		Ticket:          ticket,
		ConfirmationURL: confirmationURL("/appointment/confirmed", ticket),
	})
}

func (s *Server) appointmentConfirmation(w http.ResponseWriter, r *http.Request) {
	var data appointment.Request
	if !s.consumeTicket(w, r, wizard.KindAppointment, &data, "/appointment") {
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// ==========================
// Hand-off
// ==========================

// handOff waits out the configured submit delay, then issues the ticket.
func (s *Server) handOff(ctx context.Context, kind wizard.TicketKind, payload interface{}) (string, error) {
	if s.opts.SubmitDelay > 0 {
		timer := time.NewTimer(s.opts.SubmitDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return s.opts.Tickets.Issue(ctx, kind, payload)
}

// consumeTicket decodes the ticket named in the query into out. A missing
// or spent ticket sends the visitor back to the form's entry point.
func (s *Server) consumeTicket(w http.ResponseWriter, r *http.Request, kind wizard.TicketKind, out interface{}, entry string) bool {
	err := s.opts.Tickets.Consume(r.Context(), kind, r.URL.Query().Get("ticket"), out)
	if errors.HasCode(err, errors.ErrCodeTicketNotFound) {
		http.Redirect(w, r, entry, http.StatusSeeOther)
		return false
	}
	if err != nil {
		s.writeError(w, r, err)
		return false
	}
	return true
}
