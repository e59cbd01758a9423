package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/savari-hq/savari/internal/api/http"
	"github.com/savari-hq/savari/internal/api/http/handlers"
	"github.com/savari-hq/savari/internal/auth"
	"github.com/savari-hq/savari/internal/config"
	"github.com/savari-hq/savari/internal/events"
	"github.com/savari-hq/savari/internal/notify"
	"github.com/savari-hq/savari/internal/observability"
	"github.com/savari-hq/savari/internal/persistence"
	"github.com/savari-hq/savari/internal/repository"
	"github.com/savari-hq/savari/internal/service"
	"github.com/savari-hq/savari/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	operatorRepo := repository.NewOperatorRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)
	inviteRepo := repository.NewInviteRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	tripRepo := repository.NewTripRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	queue := notify.NewQueue(redis.Client, cfg.Redis.QueueKey)

	accountService := service.NewAccountService(*cfg, userRepo)
	tenantService := service.NewTenantService(service.TenantDependencies{
		OperatorRepo: operatorRepo,
		MemberRepo:   memberRepo,
		InviteRepo:   inviteRepo,
		Dispatcher:   dispatcher,
		InviteTTL:    cfg.Auth.InviteTTL(),
	})
	routeService := service.NewRouteService(routeRepo)
	passengerService := service.NewPassengerService(passengerRepo, operatorRepo, dispatcher)
	tripService := service.NewTripService(service.TripDependencies{
		TripRepo:      tripRepo,
		RouteRepo:     routeRepo,
		PassengerRepo: passengerRepo,
		Dispatcher:    dispatcher,
	})
	reportService := service.NewReportService(reportRepo)

	notificationService := service.NewNotificationService(dispatcher, queue, logger)
	notificationService.RegisterHandlers()

	mailer := notify.NewSMTPMailer(cfg.Mail)
	notificationWorker := worker.NewNotificationWorker(queue, mailer, logger)
	go notificationWorker.Run(ctx)

	authMiddleware := auth.NewAuthMiddleware(accountService.TokenManager(), userRepo, memberRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(accountService, tenantService),
		Operators:      handlers.NewOperatorsHandler(tenantService),
		Routes:         handlers.NewRoutesHandler(routeService),
		Passengers:     handlers.NewPassengersHandler(passengerService),
		Trips:          handlers.NewTripsHandler(tripService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
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
