package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by route pattern and status code",
		},
		[]string{"route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	ContentFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fallbacks_total",
			Help: "Sections served from compiled-in defaults",
		},
		[]string{"section", "reason"},
	)

	ContentSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_saves_total",
			Help: "Admin section saves by outcome",
		},
		[]string{"section", "result"},
	)

	ContentCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_cache_lookups_total",
			Help: "Content cache lookups by outcome",
		},
		[]string{"result"},
	)

	IntakeSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Accepted case intake submissions",
		},
		[]string{"high_value"},
	)

	IntakeScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "intake_case_score",
			Help:    "Distribution of computed case scores",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 80, 100, 120},
		},
	)

	AppointmentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointment_requests_total",
			Help: "Accepted appointment requests",
		},
		[]string{"office"},
	)

	LeadEnqueueFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_enqueue_failures_total",
			Help: "Leads accepted but not delivered to the follow-up sink",
		},
		[]string{"sink"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)
