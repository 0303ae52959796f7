package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/signin-labs/account-service/internal/api/http"
	"github.com/signin-labs/account-service/internal/api/http/handlers"
	"github.com/signin-labs/account-service/internal/auth"
	"github.com/signin-labs/account-service/internal/config"
	"github.com/signin-labs/account-service/internal/events"
	"github.com/signin-labs/account-service/internal/observability"
	"github.com/signin-labs/account-service/internal/persistence"
	"github.com/signin-labs/account-service/internal/repository"
	"github.com/signin-labs/account-service/internal/service"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	dispatcher := events.NewInMemoryDispatcher()
	service.NewAuditService(dispatcher, logger, metrics).RegisterHandlers()

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	verifier := auth.NewGoogleVerifier(ctx, auth.GoogleVerifierConfig{
		ClientID: cfg.Auth.GoogleClientID,
		JWKSURL:  cfg.Auth.GoogleJWKSURL,
	})

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Verifier:   verifier,
		Tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		Timeout:        cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	var redisPinger handlers.Pinger
	var loginLimiter fiber.Handler
	if redis.Configured() {
		redisPinger = redis
		loginLimiter = httptransport.LoginRateLimiter(redis, cfg.RateLimit.LoginPerMinute, logger)
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisPinger),
		Auth:           handlers.NewAuthHandler(authService, logger, metrics, cfg.App.IsProduction()),
		Users:          handlers.NewUsersHandler(),
		AuthMiddleware: authMiddleware,
		LoginLimiter:   loginLimiter,
		Gatherer:       registry,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
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
