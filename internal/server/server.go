// Package server exposes the site over HTTP: content reads, the two
// wizards with their confirmation hand-off, and the admin panel.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"lawfirm-site/internal/common/auth"
	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/logger"
	"lawfirm-site/internal/common/observability"
	"lawfirm-site/internal/content"
	"lawfirm-site/internal/leads"
	"lawfirm-site/internal/scoring"
	"lawfirm-site/internal/wizard"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	wizardSessionHeader = "X-Wizard-Session"
	maxBodyBytes        = 1 << 20
)

// Pinger is a dependency checked by /ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options carries the collaborators and settings of a Server.
type Options struct {
	Resolver      *content.Resolver
	Auth          *auth.Authenticator
	Tickets       *wizard.TicketStore
	Guard         *wizard.SubmitGuard
	Scorer        *scoring.Engine
	Leads         *leads.Acceptor
	Observability *observability.Observability
	Checks        map[string]Pinger
	Logger        logger.Logger

	CookieName     string
	CookieSecure   bool
	SessionTTL     time.Duration
	SubmitDelay    time.Duration
	RequestTimeout time.Duration
}

type Server struct {
	opts   Options
	mux    *http.ServeMux
	logger logger.Logger
	now    func() time.Time
}

func New(opts Options) *Server {
	if opts.CookieName == "" {
		opts.CookieName = "site_session"
	}
	s := &Server{
		opts:   opts,
		mux:    http.NewServeMux(),
		logger: opts.Logger.WithFields(map[string]interface{}{"component": "http-server"}),
		now:    time.Now,
	}
	s.routes()
	return s
}

// Handler returns the routed handler for an http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.handle("GET /health", s.health)
	s.handle("GET /ready", s.ready)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	s.handle("GET /api/site", s.getSite)
	s.handle("GET /api/site/{key}", s.getSection)

	s.handle("GET /api/intake/options", s.intakeOptions)
	s.handle("POST /api/intake/steps/{step}", s.intakeStep)
	s.handle("POST /api/intake", s.submitIntake)
	s.handle("GET /api/intake/confirmation", s.intakeConfirmation)

	s.handle("GET /api/appointment/options", s.appointmentOptions)
	s.handle("POST /api/appointment/steps/{step}", s.appointmentStep)
	s.handle("POST /api/appointment", s.submitAppointment)
	s.handle("GET /api/appointment/confirmation", s.appointmentConfirmation)

	s.handle("POST /admin/login", s.login)
	s.handle("POST /admin/logout", s.logout)
	s.handle("GET /admin", s.requireAdmin(s.adminSections))
	s.handle("GET /api/admin/sections/{key}", s.requireAdmin(s.adminSection))
	s.handle("PUT /api/admin/sections/{key}", s.requireAdmin(s.saveSection))
}

func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.Handle(pattern, s.instrument(pattern, h))
}

// ==========================
// Response Helpers
// ==========================

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorBody struct {
	Error     string                 `json:"error"`
	Code      errors.ErrorCode       `json:"code,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// writeError maps err onto a status through its code. Errors outside the
// taxonomy are reported as a bare 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr, ok := errors.AsStandard(err)
	if !ok {
		s.logger.Error("unhandled request error", map[string]interface{}{
			"path":  r.URL.Path,
			"error": err.Error(),
		})
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
		return
	}

	status := errors.HTTPStatus(stdErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", map[string]interface{}{
			"path":    r.URL.Path,
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
	}
	writeJSON(w, status, errorBody{
		Error:     stdErr.Message,
		Code:      stdErr.Code,
		Retryable: stdErr.Retryable,
		Metadata:  stdErr.Metadata,
	})
}

// decodeBody reads a JSON request body into out.
func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil {
		return errors.NewParseError(err)
	}
	return nil
}

// ==========================
// Health
// ==========================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(s.opts.Checks))
	healthy := true
	for name, p := range s.opts.Checks {
		if err := p.Ping(ctx); err != nil {
			checks[name] = err.Error()
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	status, state := http.StatusOK, "ready"
	if !healthy {
		status, state = http.StatusServiceUnavailable, "not_ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
		"time":   s.now().UTC().Format(time.RFC3339),
	})
}
