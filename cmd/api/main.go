package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/trip-service/internal/api/http"
	"github.com/spec-kit/trip-service/internal/api/http/handlers"
	"github.com/spec-kit/trip-service/internal/auth"
	"github.com/spec-kit/trip-service/internal/config"
	"github.com/spec-kit/trip-service/internal/events"
	"github.com/spec-kit/trip-service/internal/observability"
	"github.com/spec-kit/trip-service/internal/persistence"
	"github.com/spec-kit/trip-service/internal/repository"
	"github.com/spec-kit/trip-service/internal/service"
	"github.com/spec-kit/trip-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	tripRepo := repository.NewTripRepository(pool)
	guideRepo := repository.NewGuideRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	packingClient := service.NewPackingClient(cfg.Packing, redis, logger)
	tripService := service.NewTripService(tripRepo, guideRepo, packingClient, dispatcher)
	guideService := service.NewGuideService(guideRepo)

	if cfg.App.SeedOnStartup {
		if err := authService.Populate(ctx); err != nil {
			logger.Warn("failed to seed default users", zap.Error(err))
		}
	}

	guard := auth.NewGuard(authService.TokenManager(), auth.NewPolicyRegistry())

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:   handlers.NewAuthHandler(authService),
		Trips:  handlers.NewTripsHandler(tripService),
		Guides: handlers.NewGuidesHandler(guideService),
		Guard:  guard,
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
