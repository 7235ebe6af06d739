// internal/workers/intake/score-case/handler.go
package scorecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/logger"
	"lawfirm-site/internal/common/metrics"
	"lawfirm-site/internal/common/observability"
	"lawfirm-site/internal/leads"
	"lawfirm-site/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "score-case"

	jobStatusCompleted = "completed"
	jobStatusFailed    = "failed"
)

type Handler struct {
	config       *Config
	engine       *scoring.Engine
	errorHandler *errors.ErrorHandler
	obs          *observability.Observability
	logger       logger.Logger
}

// NewHandler builds the score-case handler. obs may be nil.
func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		engine:       scoring.NewEngine(config.Weights),
		errorHandler: errors.NewErrorHandler(log),
		obs:          obs,
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) (err error) {
	start := time.Now()
	defer func() {
		status := jobStatusCompleted
		if err != nil {
			status = jobStatusFailed
		}
		h.record(context.Background(), status, time.Since(start))
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err)
		return err
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return err
	}

	return h.completeJob(ctx, client, job, output)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	if input.Submission == nil {
		return nil, errors.NewParseError(fmt.Errorf("submission variable is missing"))
	}
	return &input, nil
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	result := h.engine.Score(input.Submission.Normalize())

	priority := leads.PriorityStandard
	if result.IsHighValue {
		priority = leads.PriorityHigh
	}

	h.logger.Info("case scored", map[string]interface{}{
		"leadId":      input.LeadID,
		"score":       result.Score,
		"isHighValue": result.IsHighValue,
	})

	return &Output{
		Score:            result.Score,
		IsHighValue:      result.IsHighValue,
		Reasons:          result.Reasons,
		FollowUpPriority: string(priority),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	return nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := "INTERNAL_ERROR"
	if stdErr, ok := errors.AsStandard(err); ok {
		code = string(stdErr.Code)
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) record(ctx context.Context, status string, elapsed time.Duration) {
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(elapsed.Seconds())
	h.obs.RecordJobProcessed(ctx, status)
	h.obs.RecordJobDuration(ctx, elapsed, status)
}
