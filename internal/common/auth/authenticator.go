package auth

import (
	"context"

	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/logger"
)

// IdentityProvider is the hosted auth collaborator.
type IdentityProvider interface {
	PasswordLogin(ctx context.Context, username, password string) (*TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*TokenInfo, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Authenticator turns provider logins into admin sessions and gates the
// admin surface on the administrator flag.
type Authenticator struct {
	provider IdentityProvider
	sessions *SessionStore
	logger   logger.Logger
}

func NewAuthenticator(provider IdentityProvider, sessions *SessionStore, log logger.Logger) *Authenticator {
	return &Authenticator{
		provider: provider,
		sessions: sessions,
		logger:   log.WithFields(map[string]interface{}{"component": "authenticator"}),
	}
}

// Login verifies credentials and opens a session. Non-admin identities get
// a session too; Authorize rejects them with an unauthorized error.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, errors.NewInvalidCredentialsError()
	}

	tokens, err := a.provider.PasswordLogin(ctx, username, password)
	if err != nil {
		return nil, err
	}

	info, err := a.provider.ValidateToken(ctx, tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	email := info.Email
	if email == "" {
		email = info.Username
	}
	return a.sessions.Create(ctx, Session{
		UserID:       info.Sub,
		Email:        email,
		IsAdmin:      info.IsAdmin,
		RefreshToken: tokens.RefreshToken,
	})
}

// Authorize resolves the session cookie and requires the administrator flag.
func (a *Authenticator) Authorize(ctx context.Context, cookieValue string) (*Session, error) {
	if cookieValue == "" {
		return nil, errors.NewUnauthenticatedError("no session cookie")
	}
	session, err := a.sessions.Get(ctx, cookieValue)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin {
		a.logger.Warn("non-admin access to admin surface", map[string]interface{}{
			"userId": session.UserID,
		})
		return nil, errors.NewUnauthorizedError(session.UserID)
	}
	return session, nil
}

// Logout drops the local session and ends the provider session. Provider
// failures are logged only; the local session is already gone.
func (a *Authenticator) Logout(ctx context.Context, cookieValue string) error {
	session, err := a.sessions.Get(ctx, cookieValue)
	if err != nil {
		return nil
	}
	if err := a.sessions.Delete(ctx, cookieValue); err != nil {
		return err
	}
	if session.RefreshToken != "" {
		if err := a.provider.Logout(ctx, session.RefreshToken); err != nil {
			a.logger.Warn("provider logout failed", map[string]interface{}{
				"userId": session.UserID,
				"error":  err.Error(),
			})
		}
	}
	return nil
}
