package auth

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session is the server-side record behind the admin cookie.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	IsAdmin      bool      `json:"isAdmin"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CookieValue is the opaque value stored in the browser.
func (s *Session) CookieValue() string {
	return s.UserID + ":" + s.ID
}

// SessionStore keeps admin sessions in Redis under session:<userId>:<sessionId>.
type SessionStore struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewSessionStore(rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *SessionStore {
	return &SessionStore{
		rdb:    rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "session-store"}),
	}
}

func sessionKey(userID, sessionID string) string {
	return fmt.Sprintf("session:%s:%s", userID, sessionID)
}

func parseCookie(value string) (userID, sessionID string, ok bool) {
	idx := strings.LastIndex(value, ":")
	if idx <= 0 || idx == len(value)-1 {
		return "", "", false
	}
	return value[:idx], value[idx+1:], true
}

// Create assigns a fresh id and persists the session.
func (s *SessionStore) Create(ctx context.Context, session Session) (*Session, error) {
	session.ID = uuid.NewString()
	session.CreatedAt = time.Now().UTC()

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(session.UserID, session.ID), payload, s.ttl).Err(); err != nil {
		return nil, errors.NewStoreUnavailableError("session create", err)
	}

	s.logger.Info("session created", map[string]interface{}{
		"userId":    session.UserID,
		"sessionId": session.ID,
		"isAdmin":   session.IsAdmin,
	})
	return &session, nil
}

// Get resolves a cookie value. A missing, malformed or expired session is
// an unauthenticated error.
func (s *SessionStore) Get(ctx context.Context, cookieValue string) (*Session, error) {
	userID, sessionID, ok := parseCookie(cookieValue)
	if !ok {
		return nil, errors.NewUnauthenticatedError("malformed session cookie")
	}

	raw, err := s.rdb.Get(ctx, sessionKey(userID, sessionID)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.NewUnauthenticatedError("session expired or unknown")
	}
	if err != nil {
		s.logger.Warn("session lookup failed", map[string]interface{}{"error": err.Error()})
		return nil, errors.NewUnauthenticatedError("session store unavailable")
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.NewUnauthenticatedError("corrupt session record")
	}
	return &session, nil
}

// Delete removes the session behind cookieValue. Unknown sessions are not an error.
func (s *SessionStore) Delete(ctx context.Context, cookieValue string) error {
	userID, sessionID, ok := parseCookie(cookieValue)
	if !ok {
		return nil
	}
	if err := s.rdb.Del(ctx, sessionKey(userID, sessionID)).Err(); err != nil {
		return errors.NewStoreUnavailableError("session delete", err)
	}
	s.logger.Info("session invalidated", map[string]interface{}{
		"userId":    userID,
		"sessionId": sessionID,
	})
	return nil
}
