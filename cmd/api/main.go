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

	httptransport "github.com/spec-kit/venue-service/internal/api/http"
	"github.com/spec-kit/venue-service/internal/api/http/handlers"
	"github.com/spec-kit/venue-service/internal/auth"
	"github.com/spec-kit/venue-service/internal/config"
	"github.com/spec-kit/venue-service/internal/events"
	"github.com/spec-kit/venue-service/internal/observability"
	"github.com/spec-kit/venue-service/internal/persistence"
	"github.com/spec-kit/venue-service/internal/realtime"
	"github.com/spec-kit/venue-service/internal/repository"
	"github.com/spec-kit/venue-service/internal/service"
	"github.com/spec-kit/venue-service/internal/worker"
)

const version = "0.1.0"

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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	merchantRepo := repository.NewMerchantRepository(pool)
	venueRepo := repository.NewVenueRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	checkInRepo := repository.NewCheckInRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	occupancyCache := persistence.NewOccupancyCache(redis.Client)
	revocationList := auth.NewRevocationList(redis.Client, logger)

	authService := service.NewAuthService(*cfg, userRepo, revocationList, logger)
	userService := service.NewUserService(userRepo, roleRepo, cfg.Auth.BcryptCost, logger)
	roleService := service.NewRoleService(roleRepo)
	merchantService := service.NewMerchantService(merchantRepo)
	predictionService := service.NewPredictionService(occupancyCache)
	venueService := service.NewVenueService(venueRepo, merchantRepo, occupancyCache, predictionService, dispatcher, logger)
	reservationService := service.NewReservationService(reservationRepo, venueRepo, dispatcher)
	checkInService := service.NewCheckInService(checkInRepo, reservationRepo, userRepo, venueService, dispatcher, cfg.CheckIn, logger)

	occupancyHub := realtime.NewHub(logger)
	realtime.SubscribeHub(dispatcher, occupancyHub)

	gate := auth.NewGate(
		authService.TokenManager(),
		userRepo,
		revocationList,
		auth.NewPolicyTable(auth.DefaultSkipPolicies()...),
		logger,
		metrics,
	)

	sweeper := worker.NewAutoCheckoutWorker(checkInService, cfg.CheckIn.SweepInterval(), logger)
	go sweeper.Run(ctx)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, version, pg, redis),
		Auth:         handlers.NewAuthHandler(authService, cfg.Auth.DevRoutesEnabled),
		Users:        handlers.NewUsersHandler(userService, roleService),
		Merchants:    handlers.NewMerchantsHandler(merchantService),
		Venues:       handlers.NewVenuesHandler(venueService),
		Reservations: handlers.NewReservationsHandler(reservationService),
		CheckIns:     handlers.NewCheckInsHandler(checkInService),
		Gate:         gate,
		OccupancyHub: occupancyHub,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = app.ShutdownWithContext(shutdownCtx)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
