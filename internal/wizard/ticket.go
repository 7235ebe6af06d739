package wizard

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TicketKind names what a ticket carries. The values match the keys the
// confirmation views read.
type TicketKind string

const (
	KindIntake      TicketKind = "intakeData"
	KindAppointment TicketKind = "appointmentData"
)

// TicketStore hands a wizard result to its confirmation view through a
// short-lived, single-use server-side record.
type TicketStore struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewTicketStore(rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *TicketStore {
	return &TicketStore{
		rdb:    rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "ticket-store"}),
	}
}

func ticketKey(kind TicketKind, ticket string) string {
	return fmt.Sprintf("ticket:%s:%s", kind, ticket)
}

// Issue stores payload and returns the ticket id.
func (s *TicketStore) Issue(ctx context.Context, kind TicketKind, payload interface{}) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal %s payload: %w", kind, err)
	}

	ticket := uuid.NewString()
	if err := s.rdb.Set(ctx, ticketKey(kind, ticket), raw, s.ttl).Err(); err != nil {
		return "", errors.NewStoreUnavailableError("ticket issue", err)
	}
	return ticket, nil
}

// Consume reads and deletes the ticket in one step, decoding into out.
// A second read of the same ticket is a TICKET_NOT_FOUND error.
func (s *TicketStore) Consume(ctx context.Context, kind TicketKind, ticket string, out interface{}) error {
	if _, err := uuid.Parse(ticket); err != nil {
		return errors.NewTicketNotFoundError(string(kind))
	}

	raw, err := s.rdb.GetDel(ctx, ticketKey(kind, ticket)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return errors.NewTicketNotFoundError(string(kind))
	}
	if err != nil {
		s.logger.Warn("ticket lookup failed", map[string]interface{}{
			"kind":  string(kind),
			"error": err.Error(),
		})
		return errors.NewTicketNotFoundError(string(kind))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s ticket: %w", kind, err)
	}
	return nil
}

// releaseGuard deletes the in-flight key only while it still holds the
// caller's token, so a holder whose key expired cannot drop a newer one.
var releaseGuard = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmitGuard keeps one submission per wizard session in flight across
// server instances.
type SubmitGuard struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewSubmitGuard(rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *SubmitGuard {
	return &SubmitGuard{
		rdb:    rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "submit-guard"}),
	}
}

// Acquire marks sessionID as submitting. An empty session id is not
// guarded. When Redis is unreachable the submission proceeds unguarded.
func (g *SubmitGuard) Acquire(ctx context.Context, wizardName, sessionID string) (release func(), err error) {
	noop := func() {}
	if sessionID == "" {
		return noop, nil
	}

	key := fmt.Sprintf("submit:inflight:%s:%s", wizardName, sessionID)
	token := uuid.NewString()
	ok, err := g.rdb.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		g.logger.Warn("submit guard unavailable, proceeding unguarded", map[string]interface{}{
			"wizard": wizardName,
			"error":  err.Error(),
		})
		return noop, nil
	}
	if !ok {
		return nil, errors.NewSubmitInFlightError(wizardName)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseGuard.Run(ctx, g.rdb, []string{key}, token).Err(); err != nil {
			g.logger.Warn("failed to release submit guard", map[string]interface{}{
				"wizard": wizardName,
				"error":  err.Error(),
			})
		}
	}, nil
}
