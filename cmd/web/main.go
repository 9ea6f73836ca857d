package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/http"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/http/handlers"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/apiclient"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/config"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/events"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/observability"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/persistence"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/service"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, healthDeps, cleanup := openSessionBackend(ctx, cfg, logger)
	defer cleanup()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(ctx, service.NewAuditService(dispatcher, logger, cfg.Audit))

	app, err := httptransport.NewServer(httptransport.ServerDeps{
		Config:     cfg,
		Logger:     logger,
		API:        apiclient.New(cfg.API, logger),
		Backend:    backend,
		Dispatcher: dispatcher,
		Metrics:    observability.NewMetrics(),
		HealthDeps: healthDeps,
	})
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("api", cfg.API.BaseURL),
			zap.String("session_backend", cfg.Session.Backend))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// openSessionBackend selects where browser scopes are kept.
func openSessionBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Backend, map[string]handlers.Pinger, func()) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
		return session.NewRedisBackend(rdb.Client, cfg.Session.KeyPrefix),
			map[string]handlers.Pinger{"redis": rdb},
			rdb.Close

	case config.SessionBackendPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		return session.NewPostgresBackend(pg.Pool),
			map[string]handlers.Pinger{"postgres": pg},
			pg.Close

	default:
		logger.Warn("using in-memory session storage; sign-ins are lost on restart")
		return session.NewMemoryBackend(), nil, func() {}
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
