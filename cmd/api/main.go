package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/support-kit/analytics-service/internal/api/http"
	"github.com/support-kit/analytics-service/internal/api/http/handlers"
	"github.com/support-kit/analytics-service/internal/config"
	"github.com/support-kit/analytics-service/internal/events"
	"github.com/support-kit/analytics-service/internal/observability"
	"github.com/support-kit/analytics-service/internal/persistence"
	"github.com/support-kit/analytics-service/internal/repository"
	"github.com/support-kit/analytics-service/internal/service"
	"github.com/support-kit/analytics-service/internal/worker"
	"github.com/support-kit/analytics-service/internal/zendesk"
	"github.com/support-kit/analytics-service/pkg/util"
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

	logger.Info("connecting to upstream helpdesk",
		zap.String("base_url", cfg.Zendesk.BaseURL),
		zap.String("authorization", util.MaskSecret(cfg.Zendesk.Authorization)))

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

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketViewRepository(pool)
	clientRepo := repository.NewClientViewRepository(pool)
	companyRepo := repository.NewCompanyViewRepository(pool)
	activityRepo := repository.NewActivityViewRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	notificationService.RegisterHandlers()

	statusStore := service.NewSyncStatusStore(redis)
	sourceClient := zendesk.NewClient(cfg.Zendesk, logger)
	syncService := service.NewSyncService(service.SyncDependencies{
		Source:       sourceClient,
		TicketRepo:   ticketRepo,
		ClientRepo:   clientRepo,
		CompanyRepo:  companyRepo,
		ActivityRepo: activityRepo,
		Dispatcher:   dispatcher,
		StatusStore:  statusStore,
	}, logger)
	dashboardService := service.NewDashboardService(ticketRepo, redis, logger)

	syncWorker := worker.NewSyncWorker(syncService, cfg.Zendesk.SyncInterval(), logger)
	go syncWorker.Start(ctx)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:   handlers.NewTicketsHandler(dashboardService),
		Clients:   handlers.NewClientsHandler(clientRepo, activityRepo),
		Companies: handlers.NewCompaniesHandler(companyRepo),
		Sync:      handlers.NewSyncHandler(statusStore, syncService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
