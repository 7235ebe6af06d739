// cmd/site-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"lawfirm-site/internal/common/auth"
	"lawfirm-site/internal/common/camunda"
	"lawfirm-site/internal/common/config"
	"lawfirm-site/internal/common/database"
	"lawfirm-site/internal/common/kafka"
	"lawfirm-site/internal/common/logger"
	"lawfirm-site/internal/common/observability"
	"lawfirm-site/internal/content"
	"lawfirm-site/internal/leads"
	"lawfirm-site/internal/scoring"
	"lawfirm-site/internal/server"
	"lawfirm-site/internal/wizard"

	scorecase "lawfirm-site/internal/workers/intake/score-case"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting site server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("observability disabled", zap.Error(err))
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			zapLog.Warn("observability shutdown failed", zap.Error(err))
		}
	}()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Content ---
	var store content.Store = content.NewPostgresStore(pg.DB, config.GetDuration(cfg.Content.QueryTimeout), log)
	if cfg.Content.CacheEnabled {
		store = content.NewCachedStore(store, rdb.Client, config.GetDuration(cfg.Content.CacheTTL), log)
	}
	resolver := content.NewResolver(store, log)

	checks := map[string]server.Pinger{
		"postgres": pg,
		"redis":    rdb,
	}

	// --- Workflow engine (optional) ---
	var starter leads.ProcessStarter
	var workers []*camunda.Worker
	if cfg.Camunda.Enabled {
		var wf *camunda.Client
		err = retryWithBackoff(func() error {
			var err error
			wf, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
				GatewayAddress:         cfg.Camunda.BrokerAddress,
				UsePlaintextConnection: true,
				ConnectionTimeout:      10 * time.Second,
				RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
			})
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer wf.Close()
		starter = wf
		checks["zeebe"] = wf
		zapLog.Info("Zeebe client connected successfully")

		if config.IsWorkerEnabled(cfg, scorecase.TaskType) {
			wcfg := config.GetWorkerConfig(cfg, scorecase.TaskType)
			swCfg := scorecase.LoadConfig(cfg)
			handler := scorecase.NewHandler(swCfg, obs, log)
			workers = append(workers, camunda.NewWorker(
				wf.GetClient(), scorecase.TaskType, wcfg.MaxJobsActive, swCfg.Timeout, handler, log,
			))
		} else {
			zapLog.Info("worker disabled", zap.String("taskType", scorecase.TaskType))
		}
	}

	// --- Lead hand-off ---
	var publisher leads.Publisher
	if cfg.Leads.Sink == leads.SinkKafka {
		producer := kafka.NewProducer(cfg.Leads.Brokers, cfg.Leads.Topic, log)
		defer producer.Close()
		publisher = producer
	}
	queue, err := leads.NewQueue(cfg.Leads, starter, publisher, log)
	if err != nil {
		zapLog.Fatal("lead queue setup failed", zap.Error(err))
	}
	zapLog.Info("Lead queue ready", zap.String("sink", queue.Sink()))

	// --- Admin auth ---
	keycloak := auth.NewKeycloakClient(
		cfg.Auth.Keycloak.URL,
		cfg.Auth.Keycloak.Realm,
		cfg.Auth.Keycloak.ClientID,
		cfg.Auth.Keycloak.ClientSecret,
		cfg.Auth.Keycloak.AdminClaim,
	)
	sessionTTL := config.GetDuration(cfg.Auth.SessionTTL)
	authenticator := auth.NewAuthenticator(keycloak, auth.NewSessionStore(rdb.Client, sessionTTL, log), log)

	srv := server.New(server.Options{
		Resolver:       resolver,
		Auth:           authenticator,
		Tickets:        wizard.NewTicketStore(rdb.Client, config.GetDuration(cfg.Wizard.TicketTTL), log),
		Guard:          wizard.NewSubmitGuard(rdb.Client, config.GetDuration(cfg.Wizard.InFlightTTL), log),
		Scorer:         scoring.NewEngine(scoring.WeightsFromConfig(cfg.Scoring)),
		Leads:          leads.NewAcceptor(queue, log),
		Observability:  obs,
		Checks:         checks,
		Logger:         log,
		CookieName:     cfg.Auth.CookieName,
		CookieSecure:   cfg.Auth.CookieSecure,
		SessionTTL:     sessionTTL,
		SubmitDelay:    config.GetDuration(cfg.Wizard.SubmitDelay),
		RequestTimeout: config.GetDuration(cfg.Server.RequestTimeout),
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}
	for _, w := range workers {
		w.Close()
	}

	zapLog.Info("Site server stopped gracefully")
}
