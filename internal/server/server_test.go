package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"lawfirm-site/internal/appointment"
	"lawfirm-site/internal/common/auth"
	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/logger"
	"lawfirm-site/internal/common/metrics"
	"lawfirm-site/internal/content"
	"lawfirm-site/internal/leads"
	"lawfirm-site/internal/scoring"
	"lawfirm-site/internal/wizard"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Doubles
// ==========================

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) PasswordLogin(ctx context.Context, username, password string) (*auth.TokenResponse, error) {
	args := m.Called(ctx, username, password)
	if t := args.Get(0); t != nil {
		return t.(*auth.TokenResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProvider) ValidateToken(ctx context.Context, token string) (*auth.TokenInfo, error) {
	args := m.Called(ctx, token)
	if i := args.Get(0); i != nil {
		return i.(*auth.TokenInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProvider) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

// tableStore is a seeded site_content table in memory.
type tableStore struct {
	mu        sync.Mutex
	rows      map[content.Key]content.Row
	updateErr error
}

func newTableStore(t *testing.T) *tableStore {
	t.Helper()
	s := &tableStore{rows: make(map[content.Key]content.Row)}
	for _, k := range content.Keys() {
		raw, err := content.Encode(content.Default(k))
		require.NoError(t, err)
		s.rows[k] = content.Row{Key: k, Content: raw, UpdatedAt: time.Now().UTC(), UpdatedBy: "seed"}
	}
	return s
}

func (s *tableStore) Get(_ context.Context, key content.Key) (*content.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[key]
	if !ok {
		return nil, errors.NewSectionNotSeededError(string(key))
	}
	return &r, nil
}

func (s *tableStore) GetAll(context.Context) ([]content.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]content.Row, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out, nil
}

func (s *tableStore) Update(_ context.Context, row content.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.rows[row.Key]; !ok {
		return errors.NewSectionNotSeededError(string(row.Key))
	}
	s.rows[row.Key] = row
	return nil
}

func (s *tableStore) Seed(_ context.Context, key content.Key, raw json.RawMessage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[key]; ok {
		return false, nil
	}
	s.rows[key] = content.Row{Key: key, Content: raw, UpdatedBy: "seed"}
	return true, nil
}

type recordingQueue struct {
	mu    sync.Mutex
	leads []leads.Lead
	err   error
}

func (q *recordingQueue) Sink() string { return "test" }

func (q *recordingQueue) Enqueue(_ context.Context, lead leads.Lead) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.leads = append(q.leads, lead)
	return nil
}

func (q *recordingQueue) received() []leads.Lead {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]leads.Lead(nil), q.leads...)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// ==========================
// Test Fixture
// ==========================

type fixture struct {
	server *Server
	mr     *miniredis.Miniredis
	store  *tableStore
	idp    *MockProvider
	queue  *recordingQueue
}

func newFixture(t *testing.T, mutate ...func(*Options)) *fixture {
	t.Helper()
	log := logger.NewTestLogger(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := newTableStore(t)
	idp := new(MockProvider)
	queue := &recordingQueue{}

	opts := Options{
		Resolver: content.NewResolver(store, log),
		Auth:     auth.NewAuthenticator(idp, auth.NewSessionStore(rdb, time.Hour, log), log),
		Tickets:  wizard.NewTicketStore(rdb, 30*time.Minute, log),
		Guard:    wizard.NewSubmitGuard(rdb, 30*time.Second, log),
		Scorer:   scoring.NewEngine(scoring.DefaultWeights()),
		Leads:    leads.NewAcceptor(queue, log),
		Checks: map[string]Pinger{
			"redis": pingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		},
		Logger:     log,
		SessionTTL: time.Hour,
	}
	for _, m := range mutate {
		m(&opts)
	}

	srv := New(opts)
	srv.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	return &fixture{server: srv, mr: mr, store: store, idp: idp, queue: queue}
}

func (f *fixture) do(t *testing.T, method, target string, body string, mods ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, m := range mods {
		m(req)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func withCookie(c *http.Cookie) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(c) }
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

const completeIntake = `{
	"accidentType": "commercial-truck",
	"injuryTypes": ["tbi"],
	"injurySeverity": "severe",
	"accidentDate": "2024-01-10",
	"atFault": "no",
	"hasAttorney": "no",
	"firstName": "Jane",
	"lastName": "Doe",
	"email": "jane@example.com",
	"phone": "555-0100"
}`

const completeAppointment = `{
	"office": "chandler",
	"date": "2024-03-18",
	"timeSlot": "10:00 AM",
	"firstName": "John",
	"lastName": "Roe",
	"email": "john@example.com",
	"phone": "555-0199",
	"caseType": "Wrongful Death"
}`

// loginAs runs the login form post and returns the session cookie.
func (f *fixture) loginAs(t *testing.T, userID string, isAdmin bool) *http.Cookie {
	t.Helper()
	f.idp.On("PasswordLogin", mock.Anything, userID+"@example.com", "secret").
		Return(&auth.TokenResponse{AccessToken: "access-" + userID, RefreshToken: "refresh-" + userID}, nil).Once()
	f.idp.On("ValidateToken", mock.Anything, "access-"+userID).
		Return(&auth.TokenInfo{Active: true, Sub: userID, Email: userID + "@example.com", IsAdmin: isAdmin}, nil).Once()

	form := url.Values{"email": {userID + "@example.com"}, "password": {"secret"}}
	rec := f.do(t, http.MethodPost, "/admin/login", form.Encode(), asForm)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))

	for _, c := range rec.Result().Cookies() {
		if c.Name == "site_session" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func asForm(r *http.Request) {
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
}

// ==========================
// Health Tests
// ==========================

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])
}

func TestReady(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode(t, rec)["status"])

	f = newFixture(t, func(o *Options) {
		o.Checks["postgres"] = pingerFunc(func(context.Context) error { return stderrors.New("connection refused") })
	})
	rec = f.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "not_ready", body["status"])
	assert.Equal(t, "connection refused", body["checks"].(map[string]interface{})["postgres"])
}

// ==========================
// Site Content Tests
// ==========================

func TestGetSite_AllSections(t *testing.T) {
	f := newFixture(t)
	f.store.rows = map[content.Key]content.Row{}

	rec := f.do(t, http.MethodGet, "/api/site", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var site map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &site))
	assert.Len(t, site, len(content.Keys()))
	for _, k := range content.Keys() {
		assert.Contains(t, site, string(k))
	}
}

func TestGetSection(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/site/hero", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content.Default(content.KeyHero).(*content.Hero).HeadingLine1, decode(t, rec)["heading_line1"])

	rec = f.do(t, http.MethodGet, "/api/site/testimonials", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(errors.ErrCodeUnknownSection), decode(t, rec)["code"])
}

// ==========================
// Intake Tests
// ==========================

func TestIntakeOptions(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/intake/options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["accidentTypes"], 8)
	assert.Len(t, body["severities"], 4)
}

func TestIntakeStep(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		target string
		body   string
		status int
		want   bool
	}{
		{"step 1 complete", "/api/intake/steps/1", `{"accidentType":"bus"}`, http.StatusOK, true},
		{"step 1 empty", "/api/intake/steps/1", `{"accidentType":""}`, http.StatusOK, false},
		{"step 1 whitespace is filled", "/api/intake/steps/1", `{"accidentType":"  "}`, http.StatusOK, true},
		{"step 2 missing severity", "/api/intake/steps/2", `{"injuryTypes":["tbi"]}`, http.StatusOK, false},
		{"unknown step", "/api/intake/steps/9", completeIntake, http.StatusOK, false},
		{"non-numeric step", "/api/intake/steps/first", `{}`, http.StatusBadRequest, false},
		{"malformed body", "/api/intake/steps/1", `{`, http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.want, decode(t, rec)["canAdvance"])
			}
		})
	}
}

func TestSubmitIntake_TicketHandOff(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/intake", completeIntake)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	ticket := body["ticket"].(string)
	assert.Equal(t, "/intake/confirmation?ticket="+ticket, body["confirmationUrl"])

	received := f.queue.received()
	require.Len(t, received, 1)
	assert.Equal(t, leads.KindIntake, received[0].Kind)
	assert.Equal(t, leads.PriorityHigh, received[0].Priority)

	rec = f.do(t, http.MethodGet, "/api/intake/confirmation?ticket="+ticket, "")
	require.Equal(t, http.StatusOK, rec.Code)
	confirmation := decode(t, rec)
	assert.Equal(t, "Jane", confirmation["firstName"])
	analysis := confirmation["caseAnalysis"].(map[string]interface{})
	assert.Equal(t, float64(80), analysis["score"])
	assert.Equal(t, true, analysis["isHighValue"])

	rec = f.do(t, http.MethodGet, "/api/intake/confirmation?ticket="+ticket, "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/intake", rec.Header().Get("Location"))
}

func TestSubmitIntake_Incomplete(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/intake", `{"accidentType":"bus","injuryTypes":["tbi"]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, string(errors.ErrCodeStepIncomplete), body["code"])
	assert.Equal(t, float64(2), body["metadata"].(map[string]interface{})["step"])
	assert.Empty(t, f.queue.received())
}

func TestSubmitIntake_EnqueueFailureStillConfirms(t *testing.T) {
	f := newFixture(t)
	f.queue.err = stderrors.New("broker down")

	rec := f.do(t, http.MethodPost, "/api/intake", completeIntake)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["ticket"])
}

func TestSubmitIntake_InFlightSession(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.mr.Set("submit:inflight:intake:sess-1", "1"))

	withSession := func(r *http.Request) { r.Header.Set(wizardSessionHeader, "sess-1") }
	rec := f.do(t, http.MethodPost, "/api/intake", completeIntake, withSession)
	assert.Equal(t, http.StatusConflict, rec.Code)

	f.mr.Del("submit:inflight:intake:sess-1")
	rec = f.do(t, http.MethodPost, "/api/intake", completeIntake, withSession)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.False(t, f.mr.Exists("submit:inflight:intake:sess-1"), "guard released after submit")
}

func TestSubmitIntake_DelayHonorsCancellation(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.SubmitDelay = time.Hour })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := f.do(t, http.MethodPost, "/api/intake", completeIntake, func(r *http.Request) {
		*r = *r.WithContext(ctx)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, f.mr.Keys(), 0, "no ticket issued")
	assert.Empty(t, f.queue.received(), "no lead queued without a ticket")
}

func TestSubmitIntake_TicketStoreDownQueuesOnce(t *testing.T) {
	f := newFixture(t)
	withSession := func(r *http.Request) { r.Header.Set(wizardSessionHeader, "sess-retry") }

	f.mr.SetError("READONLY You can't write against a read only replica.")
	for attempt := 1; attempt <= 2; attempt++ {
		rec := f.do(t, http.MethodPost, "/api/intake", completeIntake, withSession)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, "attempt %d", attempt)
		assert.Equal(t, true, decode(t, rec)["retryable"])
	}
	assert.Empty(t, f.queue.received(), "failed attempts queue nothing")

	f.mr.SetError("")
	rec := f.do(t, http.MethodPost, "/api/intake", completeIntake, withSession)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, f.queue.received(), 1)
}

// ==========================
// Appointment Tests
// ==========================

func TestAppointmentOptions(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/appointment/options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	dates := body["availableDates"].([]interface{})
	require.Len(t, dates, 20)
	assert.Equal(t, "2024-03-18", dates[0])
	assert.Len(t, body["offices"], 2)
}

func TestAppointmentStep(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/appointment/steps/1", `{"office":"pinetop","date":"2024-03-18","timeSlot":"9:00 AM"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["canAdvance"])

	rec = f.do(t, http.MethodPost, "/api/appointment/steps/1", `{"office":"pinetop","date":"next week","timeSlot":"9:00 AM"}`)
	assert.Equal(t, false, decode(t, rec)["canAdvance"])

	rec = f.do(t, http.MethodPost, "/api/appointment/steps/3", `{}`)
	assert.Equal(t, true, decode(t, rec)["canAdvance"])
}

func TestSubmitAppointment_TicketHandOff(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/appointment", completeAppointment)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ticket := decode(t, rec)["ticket"].(string)

	received := f.queue.received()
	require.Len(t, received, 1)
	assert.Equal(t, leads.KindAppointment, received[0].Kind)

	rec = f.do(t, http.MethodGet, "/api/appointment/confirmation?ticket="+ticket, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chandler", decode(t, rec)["office"])

	rec = f.do(t, http.MethodGet, "/api/appointment/confirmation?ticket="+ticket, "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/appointment", rec.Header().Get("Location"))
}

func TestSubmitAppointment_Incomplete(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/appointment", `{"office":"chandler","date":"2024-03-18","timeSlot":"10:00 AM"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["metadata"].(map[string]interface{})["step"])
}

func TestSubmitAppointment_TicketStoreDownQueuesNothing(t *testing.T) {
	f := newFixture(t)
	f.mr.SetError("READONLY You can't write against a read only replica.")

	rec := f.do(t, http.MethodPost, "/api/appointment", completeAppointment)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, f.queue.received())
}

func TestSubmitAppointment_UnknownOfficeSharesOneSeries(t *testing.T) {
	f := newFixture(t)
	seriesCount := func() int {
		ch := make(chan prometheus.Metric, 128)
		metrics.AppointmentRequests.Collect(ch)
		close(ch)
		return len(ch)
	}

	// Known offices plus the shared bucket.
	for _, office := range []string{"chandler", "pinetop", "branch-0"} {
		body := strings.Replace(completeAppointment, `"chandler"`, `"`+office+`"`, 1)
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/appointment", body).Code)
	}
	before := seriesCount()

	for i := 1; i <= 25; i++ {
		body := strings.Replace(completeAppointment, `"chandler"`, fmt.Sprintf(`"branch-%d"`, i), 1)
		rec := f.do(t, http.MethodPost, "/api/appointment", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	assert.Equal(t, before, seriesCount())
	assert.LessOrEqual(t, before, len(appointment.Offices)+1)
}

func TestAppointmentConfirmation_MissingTicket(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/appointment/confirmation", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/appointment", rec.Header().Get("Location"))
}

// ==========================
// Admin Tests
// ==========================

func TestAdmin_RedirectsWithoutSession(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		method string
		target string
		cookie *http.Cookie
	}{
		{"no cookie", http.MethodGet, "/admin", nil},
		{"malformed cookie", http.MethodGet, "/admin", &http.Cookie{Name: "site_session", Value: "garbage"}},
		{"unknown session", http.MethodGet, "/api/admin/sections/hero", &http.Cookie{Name: "site_session", Value: "u1:missing"}},
		{"save without session", http.MethodPut, "/api/admin/sections/hero", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mods []func(*http.Request)
			if tt.cookie != nil {
				mods = append(mods, withCookie(tt.cookie))
			}
			rec := f.do(t, tt.method, tt.target, "", mods...)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/admin/login?error=unauthenticated", rec.Header().Get("Location"))
		})
	}
}

func TestAdmin_NonAdminIsUnauthorized(t *testing.T) {
	f := newFixture(t)
	cookie := f.loginAs(t, "editor", false)

	rec := f.do(t, http.MethodGet, "/admin", "", withCookie(cookie))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login?error=unauthorized", rec.Header().Get("Location"))
}

func TestAdmin_LoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{"bad credentials", errors.NewInvalidCredentialsError(), "invalid_credentials"},
		{"provider down", errors.NewAuthProviderError(stderrors.New("dial tcp")), "provider_unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.idp.On("PasswordLogin", mock.Anything, "a@example.com", "nope").Return(nil, tt.err).Once()

			form := url.Values{"email": {"a@example.com"}, "password": {"nope"}}
			rec := f.do(t, http.MethodPost, "/admin/login", form.Encode(), asForm)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/admin/login?error="+tt.reason, rec.Header().Get("Location"))
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestAdmin_SectionsList(t *testing.T) {
	f := newFixture(t)
	cookie := f.loginAs(t, "admin", true)

	rec := f.do(t, http.MethodGet, "/admin", "", withCookie(cookie))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "admin@example.com", body["user"])

	sections := body["sections"].([]interface{})
	require.Len(t, sections, len(content.Keys()))
	first := sections[0].(map[string]interface{})
	assert.Equal(t, "hero", first["key"])
	assert.Equal(t, "Hero Section", first["label"])
	assert.Equal(t, "seed", first["updatedBy"])
}

func TestAdmin_SaveSection(t *testing.T) {
	f := newFixture(t)
	cookie := f.loginAs(t, "admin", true)

	hero := content.Default(content.KeyHero).(*content.Hero)
	hero.HeadingLine1 = "New Heading"
	raw, err := json.Marshal(hero)
	require.NoError(t, err)

	rec := f.do(t, http.MethodPut, "/api/admin/sections/hero", string(raw), withCookie(cookie))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Changes saved successfully!", decode(t, rec)["message"])
	assert.Equal(t, "admin", f.store.rows[content.KeyHero].UpdatedBy)

	rec = f.do(t, http.MethodGet, "/api/site/hero", "")
	assert.Equal(t, "New Heading", decode(t, rec)["heading_line1"])

	rec = f.do(t, http.MethodGet, "/api/admin/sections/hero", "", withCookie(cookie))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", decode(t, rec)["updatedBy"])
}

func TestAdmin_SaveSectionErrors(t *testing.T) {
	f := newFixture(t)
	cookie := f.loginAs(t, "admin", true)

	rec := f.do(t, http.MethodPut, "/api/admin/sections/hero", `{"heading_line1": 5}`, withCookie(cookie))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, string(errors.ErrCodeValidationFailed), decode(t, rec)["code"])

	rec = f.do(t, http.MethodPut, "/api/admin/sections/testimonials", `{}`, withCookie(cookie))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	raw, err := json.Marshal(content.Default(content.KeyFooter))
	require.NoError(t, err)
	f.store.updateErr = errors.NewStoreUnavailableError("update", stderrors.New("connection reset"))
	rec = f.do(t, http.MethodPut, "/api/admin/sections/footer", string(raw), withCookie(cookie))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Error saving changes", body["error"])
	assert.Equal(t, true, body["retryable"])

	f.store.updateErr = stderrors.New("deadlock detected")
	rec = f.do(t, http.MethodPut, "/api/admin/sections/footer", string(raw), withCookie(cookie))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdmin_Logout(t *testing.T) {
	f := newFixture(t)
	cookie := f.loginAs(t, "admin", true)
	f.idp.On("Logout", mock.Anything, "refresh-admin").Return(nil).Once()

	rec := f.do(t, http.MethodPost, "/admin/logout", "", withCookie(cookie))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	rec = f.do(t, http.MethodGet, "/admin", "", withCookie(cookie))
	assert.Equal(t, "/admin/login?error=unauthenticated", rec.Header().Get("Location"))
	f.idp.AssertExpectations(t)
}
