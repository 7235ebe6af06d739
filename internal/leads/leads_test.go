package leads

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"lawfirm-site/internal/appointment"
	"lawfirm-site/internal/common/config"
	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/logger"
	"lawfirm-site/internal/intake"
	"lawfirm-site/internal/scoring"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Doubles
// ==========================

type MockStarter struct {
	mock.Mock
}

func (m *MockStarter) StartProcess(ctx context.Context, processID string, variables interface{}) (int64, error) {
	args := m.Called(ctx, processID, variables)
	return args.Get(0).(int64), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Send(ctx context.Context, key string, value interface{}) error {
	return m.Called(ctx, key, value).Error(0)
}

type failingQueue struct{}

func (failingQueue) Enqueue(context.Context, Lead) error {
	return errors.NewLeadEnqueueError("test", stderrors.New("unreachable"))
}
func (failingQueue) Sink() string { return "test" }

func highValueLead() Lead {
	s := intake.Submission{
		AccidentType:   "commercial-truck",
		InjuryTypes:    []string{"spinal", "tbi"},
		InjurySeverity: intake.SeverityCatastrophic,
		AtFault:        intake.FaultNo,
		HasAttorney:    intake.AnswerNo,
		FirstName:      "Dana",
		Email:          "dana@example.com",
	}
	return NewIntakeLead(s, scoring.Score(s), time.Now())
}

// ==========================
// Lead Tests
// ==========================

func TestNewIntakeLead(t *testing.T) {
	lead := highValueLead()
	_, err := uuid.Parse(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, KindIntake, lead.Kind)
	assert.Equal(t, PriorityHigh, lead.Priority)
	assert.Equal(t, 105, lead.Score.Score)
	assert.Equal(t, time.UTC, lead.ReceivedAt.Location())

	low := intake.Submission{AccidentType: "car-accident"}
	assert.Equal(t, PriorityStandard, NewIntakeLead(low, scoring.Score(low), time.Now()).Priority)
}

func TestNewAppointmentLead(t *testing.T) {
	lead := NewAppointmentLead(appointment.Request{Office: "pinetop", Email: "x@example.com"}, time.Now())
	assert.Equal(t, KindAppointment, lead.Kind)
	assert.Equal(t, PriorityStandard, lead.Priority)
	assert.Nil(t, lead.Score)
	assert.Equal(t, "pinetop", lead.Appointment.Office)
}

func TestLead_LogFieldsOmitContactDetails(t *testing.T) {
	fields := highValueLead().LogFields()
	assert.Equal(t, 105, fields["score"])
	assert.Equal(t, true, fields["isHighValue"])
	for _, v := range fields {
		assert.NotEqual(t, "dana@example.com", v)
		assert.NotEqual(t, "Dana", v)
	}
}

// ==========================
// Queue Tests
// ==========================

func TestZeebeQueue(t *testing.T) {
	starter := new(MockStarter)
	lead := highValueLead()
	starter.On("StartProcess", mock.Anything, "lead-follow-up", lead).Return(int64(2251799813685249), nil).Once()
	starter.On("StartProcess", mock.Anything, "lead-follow-up", mock.Anything).Return(int64(0), stderrors.New("unavailable")).Once()

	q := NewZeebeQueue(starter, "lead-follow-up", logger.NewTestLogger(t))
	assert.Equal(t, SinkZeebe, q.Sink())
	require.NoError(t, q.Enqueue(context.Background(), lead))

	err := q.Enqueue(context.Background(), lead)
	assert.True(t, errors.HasCode(err, errors.ErrCodeLeadEnqueue))
	starter.AssertExpectations(t)
}

func TestKafkaQueue(t *testing.T) {
	pub := new(MockPublisher)
	lead := highValueLead()
	pub.On("Send", mock.Anything, lead.ID, lead).Return(nil).Once()
	pub.On("Send", mock.Anything, lead.ID, lead).Return(stderrors.New("broker down")).Once()

	q := NewKafkaQueue(pub, logger.NewNoOpLogger())
	require.NoError(t, q.Enqueue(context.Background(), lead))
	assert.True(t, errors.HasCode(q.Enqueue(context.Background(), lead), errors.ErrCodeLeadEnqueue))
	pub.AssertExpectations(t)
}

func TestNewQueue(t *testing.T) {
	log := logger.NewNoOpLogger()

	tests := []struct {
		name      string
		cfg       config.LeadsConfig
		starter   ProcessStarter
		publisher Publisher
		wantSink  string
		wantErr   bool
	}{
		{"default is log", config.LeadsConfig{}, nil, nil, SinkLog, false},
		{"log", config.LeadsConfig{Sink: "log"}, nil, nil, SinkLog, false},
		{"zeebe", config.LeadsConfig{Sink: "zeebe", ProcessID: "p"}, new(MockStarter), nil, SinkZeebe, false},
		{"zeebe without client", config.LeadsConfig{Sink: "zeebe"}, nil, nil, "", true},
		{"kafka", config.LeadsConfig{Sink: "kafka"}, nil, new(MockPublisher), SinkKafka, false},
		{"kafka without producer", config.LeadsConfig{Sink: "kafka"}, nil, nil, "", true},
		{"unknown", config.LeadsConfig{Sink: "fax"}, nil, nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQueue(tt.cfg, tt.starter, tt.publisher, log)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSink, q.Sink())
		})
	}
}

// ==========================
// Acceptor Tests
// ==========================

func TestAcceptor_FailureDoesNotRejectLead(t *testing.T) {
	a := NewAcceptor(failingQueue{}, logger.NewTestLogger(t))
	assert.False(t, a.Accept(context.Background(), highValueLead()))

	a = NewAcceptor(NewLogQueue(logger.NewNoOpLogger()), logger.NewNoOpLogger())
	assert.True(t, a.Accept(context.Background(), highValueLead()))
}
