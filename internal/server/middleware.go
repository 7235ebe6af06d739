package server

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lawfirm-site/internal/common/auth"
	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type contextKey string

const sessionContextKey contextKey = "session"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument opens a span per request, applies the request timeout and
// records the outcome under the route pattern.
func (s *Server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := r.Context()
		if s.opts.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
			defer cancel()
		}
		ctx, span := s.opts.Observability.StartSpan(ctx, route,
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
		)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r.WithContext(ctx))

		duration := time.Since(start)
		span.SetAttributes(attribute.Int("http.status_code", rec.status))
		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}

		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
		s.opts.Observability.RecordRequest(ctx, route, rec.status, duration)

		fields := map[string]interface{}{
			"route":      route,
			"status":     rec.status,
			"durationMs": duration.Milliseconds(),
		}
		if sc := span.SpanContext(); sc.HasTraceID() {
			fields["traceId"] = sc.TraceID().String()
		}
		s.logger.Debug("request handled", fields)
	})
}

// requireAdmin resolves the session cookie and redirects to the login page
// with a reason code when the caller is not an administrator.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cookieValue string
		if c, err := r.Cookie(s.opts.CookieName); err == nil {
			cookieValue = c.Value
		}

		session, err := s.opts.Auth.Authorize(r.Context(), cookieValue)
		if err != nil {
			code := errors.ErrCodeUnauthenticated
			if stdErr, ok := errors.AsStandard(err); ok {
				code = stdErr.Code
			}
			redirectToLogin(w, r, errors.RedirectReason(code))
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

func sessionFrom(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, reason string) {
	target := "/admin/login"
	if reason != "" {
		target += "?" + url.Values{"error": {reason}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
