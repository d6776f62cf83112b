package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	httptransport "github.com/spec-kit/intern-dashboard/internal/api/http"
	"github.com/spec-kit/intern-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/intern-dashboard/internal/apiclient"
	"github.com/spec-kit/intern-dashboard/internal/auth"
	"github.com/spec-kit/intern-dashboard/internal/config"
	"github.com/spec-kit/intern-dashboard/internal/events"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
	"github.com/spec-kit/intern-dashboard/internal/observability"
	"github.com/spec-kit/intern-dashboard/internal/persistence"
	"github.com/spec-kit/intern-dashboard/internal/repository"
	"github.com/spec-kit/intern-dashboard/internal/schemas"
	"github.com/spec-kit/intern-dashboard/internal/service"
	"github.com/spec-kit/intern-dashboard/internal/session"
	"github.com/spec-kit/intern-dashboard/internal/views"
	"github.com/spec-kit/intern-dashboard/internal/worker"
)

// credentialTTL bounds how long an abandoned browser's credential stays persisted.
const credentialTTL = 7 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, cfg.App, logger)
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(func(e events.Event, err error) {
		logger.Warn("event handler failed", zap.String("type", string(e.Type)), zap.Error(err))
	})
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	persister, checks, closeBackend := openSessionBackend(ctx, cfg, logger)
	defer closeBackend()

	sealer, err := session.NewSealer(cfg.Session.SealKey)
	if err != nil {
		logger.Fatal("invalid session seal key", zap.Error(err))
	}
	if cfg.Session.SealKey == nil {
		logger.Warn("SESSION_SEAL_KEY not set; credentials are persisted unsealed")
	}

	manager := session.NewManager(session.ManagerConfig{
		StorageKey: cfg.Session.StorageKey,
		IdleTTL:    cfg.Session.IdleTTL(),
	}, persister, sealer, dispatcher, logger, metrics)

	client := apiclient.New(apiclient.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
		Schemas: schemas.MustLoad(),
		Logger:  logger,
		Metrics: metrics,
	})
	decoder := auth.NewDecoder(logger, metrics)
	navigator := navigation.New(navigation.DefaultEntries())
	validator := dto.NewValidator()
	authService := service.NewAuthService(client, decoder, validator, logger)
	appCtx := &views.AppContext{
		API:       client,
		Navigator: navigator,
		Decoder:   decoder,
		Validator: validator,
		Logger:    logger,
		Now:       time.Now,
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		Views:                 httptransport.NewViewEngine(),
		DisableStartupMessage: true,
	})
	sessions := auth.NewSessionMiddleware(manager, decoder, auth.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
	}, cfg.Session.HydrateWait(), logger)

	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		Session:    handlers.NewSessionHandler(appCtx, authService, sessions, logger),
		Admin:      handlers.NewAdminHandler(appCtx),
		Supervisor: handlers.NewSupervisorHandler(appCtx),
		Intern:     handlers.NewInternHandler(appCtx),
		Navigator:  navigator,
		Middleware: sessions,
		Metrics:    metrics,
	})

	sweeperDone := worker.StartSessionSweeper(ctx, manager, cfg.Session.SweepInterval(), logger)

	go func() {
		logger.Info("dashboard listening", zap.String("addr", cfg.App.Addr()), zap.String("api", cfg.API.BaseURL))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.ShutdownWithTimeout(10 * time.Second)
	cancel()
	<-sweeperDone

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
}

// openSessionBackend connects the configured credential persistence and
// returns the readiness checks that go with it.
func openSessionBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Persister, map[string]handlers.Pinger, func()) {
	switch cfg.Session.Backend {
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
		return repository.NewPostgresCredentialRepository(pg.Pool), map[string]handlers.Pinger{"postgres": pg}, pg.Close
	case config.SessionBackendMemory:
		logger.Warn("memory session backend: sessions do not survive a restart")
		return repository.NewMemoryCredentialRepository(), map[string]handlers.Pinger{}, func() {}
	default:
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		return repository.NewRedisCredentialRepository(redis.Client, credentialTTL), map[string]handlers.Pinger{"redis": redis}, redis.Close
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
