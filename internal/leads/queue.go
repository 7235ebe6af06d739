package leads

import (
	"context"
	"fmt"

	"lawfirm-site/internal/common/config"
	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/logger"
	"lawfirm-site/internal/common/metrics"
)

const (
	SinkZeebe = "zeebe"
	SinkKafka = "kafka"
	SinkLog   = "log"
)

// Queue delivers a lead to a follow-up sink.
type Queue interface {
	Enqueue(ctx context.Context, lead Lead) error
	Sink() string
}

// ProcessStarter starts a workflow instance. Implemented by camunda.Client.
type ProcessStarter interface {
	StartProcess(ctx context.Context, processID string, variables interface{}) (int64, error)
}

// Publisher writes a keyed message. Implemented by kafka.Producer.
type Publisher interface {
	Send(ctx context.Context, key string, value interface{}) error
}

// ZeebeQueue starts one follow-up process instance per lead.
type ZeebeQueue struct {
	starter   ProcessStarter
	processID string
	logger    logger.Logger
}

func NewZeebeQueue(starter ProcessStarter, processID string, log logger.Logger) *ZeebeQueue {
	return &ZeebeQueue{
		starter:   starter,
		processID: processID,
		logger:    log.WithFields(map[string]interface{}{"component": "lead-queue", "sink": SinkZeebe}),
	}
}

func (q *ZeebeQueue) Sink() string { return SinkZeebe }

func (q *ZeebeQueue) Enqueue(ctx context.Context, lead Lead) error {
	key, err := q.starter.StartProcess(ctx, q.processID, lead)
	if err != nil {
		return errors.NewLeadEnqueueError(SinkZeebe, err)
	}
	fields := lead.LogFields()
	fields["processInstanceKey"] = key
	q.logger.Info("follow-up process started", fields)
	return nil
}

// KafkaQueue publishes each lead keyed by its id.
type KafkaQueue struct {
	publisher Publisher
	logger    logger.Logger
}

func NewKafkaQueue(publisher Publisher, log logger.Logger) *KafkaQueue {
	return &KafkaQueue{
		publisher: publisher,
		logger:    log.WithFields(map[string]interface{}{"component": "lead-queue", "sink": SinkKafka}),
	}
}

func (q *KafkaQueue) Sink() string { return SinkKafka }

func (q *KafkaQueue) Enqueue(ctx context.Context, lead Lead) error {
	if err := q.publisher.Send(ctx, lead.ID, lead); err != nil {
		return errors.NewLeadEnqueueError(SinkKafka, err)
	}
	q.logger.Info("lead published", lead.LogFields())
	return nil
}

// LogQueue only records that a lead arrived.
type LogQueue struct {
	logger logger.Logger
}

func NewLogQueue(log logger.Logger) *LogQueue {
	return &LogQueue{logger: log.WithFields(map[string]interface{}{"component": "lead-queue", "sink": SinkLog})}
}

func (q *LogQueue) Sink() string { return SinkLog }

func (q *LogQueue) Enqueue(_ context.Context, lead Lead) error {
	q.logger.Info("lead accepted", lead.LogFields())
	return nil
}

// NewQueue selects the sink named in cfg. The starter and publisher may be
// nil when their sink is not selected.
func NewQueue(cfg config.LeadsConfig, starter ProcessStarter, publisher Publisher, log logger.Logger) (Queue, error) {
	switch cfg.Sink {
	case SinkZeebe:
		if starter == nil {
			return nil, fmt.Errorf("leads sink %q requires a workflow client", cfg.Sink)
		}
		return NewZeebeQueue(starter, cfg.ProcessID, log), nil
	case SinkKafka:
		if publisher == nil {
			return nil, fmt.Errorf("leads sink %q requires a kafka producer", cfg.Sink)
		}
		return NewKafkaQueue(publisher, log), nil
	case SinkLog, "":
		return NewLogQueue(log), nil
	default:
		return nil, fmt.Errorf("unknown leads sink %q", cfg.Sink)
	}
}

// Acceptor is the submission-side entry point. Accept never fails: a
// delivery error is logged and counted and the lead is still accepted.
type Acceptor struct {
	queue  Queue
	logger logger.Logger
}

func NewAcceptor(queue Queue, log logger.Logger) *Acceptor {
	return &Acceptor{
		queue:  queue,
		logger: log.WithFields(map[string]interface{}{"component": "lead-acceptor"}),
	}
}

// Accept hands lead to the queue and reports whether delivery succeeded.
func (a *Acceptor) Accept(ctx context.Context, lead Lead) bool {
	if err := a.queue.Enqueue(ctx, lead); err != nil {
		metrics.LeadEnqueueFailures.WithLabelValues(a.queue.Sink()).Inc()
		fields := lead.LogFields()
		fields["error"] = err
		a.logger.Error("lead accepted but not delivered for follow-up", fields)
		return false
	}
	return true
}
