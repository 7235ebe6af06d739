package server

import (
	"encoding/json"
	"io"
	"net/http"

	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/content"
)

const saveSuccessMessage = "Changes saved successfully!"

// login accepts the admin form post. Failures redirect back to the login
// page with a reason code; they never surface as an error page.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	if email == "" {
		email = r.FormValue("username")
	}

	session, err := s.opts.Auth.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		code := errors.ErrCodeAuthProviderFailed
		if stdErr, ok := errors.AsStandard(err); ok {
			code = stdErr.Code
		}
		s.logger.Warn("admin login failed", map[string]interface{}{"code": string(code)})
		redirectToLogin(w, r, errors.RedirectReason(code))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    session.CookieValue(),
		Path:     "/",
		MaxAge:   int(s.opts.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		if err := s.opts.Auth.Logout(r.Context(), c.Value); err != nil {
			s.logger.Error("admin logout failed", map[string]interface{}{"error": err.Error()})
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	redirectToLogin(w, r, "")
}

func (s *Server) adminSections(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":     session.Email,
		"sections": s.opts.Resolver.Sections(r.Context()),
	})
}

func (s *Server) adminSection(w http.ResponseWriter, r *http.Request) {
	key, ok := content.ParseKey(r.PathValue("key"))
	if !ok {
		s.writeError(w, r, errors.NewUnknownSectionError(r.PathValue("key")))
		return
	}
	writeJSON(w, http.StatusOK, s.opts.Resolver.Section(r.Context(), key))
}

// saveSection replaces one section document. Store failures come back as a
// retryable 503 so the editor can save again.
func (s *Server) saveSection(w http.ResponseWriter, r *http.Request) {
	key, ok := content.ParseKey(r.PathValue("key"))
	if !ok {
		s.writeError(w, r, errors.NewUnknownSectionError(r.PathValue("key")))
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.NewParseError(err))
		return
	}

	session := sessionFrom(r.Context())
	section, err := s.opts.Resolver.Upsert(r.Context(), key, json.RawMessage(raw), session.UserID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": saveSuccessMessage,
			"section": section,
		})
	case errors.IsStoreError(err):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{
			Error:     "Error saving changes",
			Code:      storeCode(err),
			Retryable: true,
		})
	default:
		s.writeError(w, r, err)
	}
}

func storeCode(err error) errors.ErrorCode {
	if stdErr, ok := errors.AsStandard(err); ok {
		return stdErr.Code
	}
	return errors.ErrCodeStoreWriteRejected
}
