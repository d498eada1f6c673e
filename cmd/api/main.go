package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/hipolitokrisandrew-code/hr-request-service/internal/api/http"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/api/http/handlers"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/auth"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/config"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/duedate"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/events"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/observability"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/persistence"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/repository"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/service"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var lock persistence.ActionLock
	if redis.Ping(ctx) == nil {
		lock = persistence.NewRedisActionLock(redis, logger, cfg.Lock.Key, cfg.Lock.LockWait(), cfg.Lock.LockTTL())
	} else {
		logger.Warn("redis unavailable; using in-process action lock")
		lock = persistence.NewLocalActionLock(cfg.Lock.LockWait())
	}

	tables := make(map[domain.BusinessUnit]string, len(cfg.Units.Tables))
	tableNames := make([]string, 0, len(cfg.Units.Tables))
	for code, table := range cfg.Units.Tables {
		unit := domain.CompanyFromCode(code)
		if unit == "" {
			logger.Warn("skipping unknown company code in unit table config", zap.String("code", code))
			continue
		}
		tables[unit] = table
		tableNames = append(tableNames, table)
	}

	pool := pg.PoolHandle()
	rowStore := repository.NewPostgresRowStore(pool, tableNames)
	employeeRepo := repository.NewEmployeeRepository(pool)
	blobRepo := repository.NewBlobRepository(pool)

	engine := duedate.NewEngine(logger)
	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditLogger(dispatcher, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(employeeRepo, tokens)
	sessionMiddleware := auth.NewSessionMiddleware(tokens, employeeRepo)

	submissionService := service.NewSubmissionService(service.SubmissionDependencies{
		Store:      rowStore,
		Tables:     tables,
		Blobs:      blobRepo,
		Engine:     engine,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	lifecycleService := service.NewLifecycleService(service.LifecycleDependencies{
		Store:      rowStore,
		Tables:     tables,
		Engine:     engine,
		Lock:       lock,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	unifiedLogService := service.NewUnifiedLogService(rowStore, tables, logger)
	reportService := service.NewReportService()

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService),
		Requests: handlers.NewRequestsHandler(submissionService, lifecycleService, unifiedLogService, metrics),
		Reports:  handlers.NewReportsHandler(unifiedLogService, reportService),
		Files:    handlers.NewFilesHandler(blobRepo),
		Session:  sessionMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
