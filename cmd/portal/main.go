package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medchain/portal/internal/config"
	"github.com/medchain/portal/internal/guard"
	"github.com/medchain/portal/internal/observability"
	"github.com/medchain/portal/internal/portal"
	"github.com/medchain/portal/internal/portal/handlers"
	"github.com/medchain/portal/internal/session"
	"github.com/medchain/portal/internal/tokenstore"
	"github.com/medchain/portal/internal/upstream"
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

	metrics := observability.NewMetrics()

	var store tokenstore.Store
	var redisStore *tokenstore.RedisStore
	switch cfg.Session.TokenStore {
	case config.TokenStoreRedis:
		client := tokenstore.NewRedisClient(cfg.Redis, logger)
		defer client.Close()
		redisStore = tokenstore.NewRedis(client, cfg.Session.TokenTTL())
		store = redisStore
	default:
		logger.Info("using in-memory token store")
		store = tokenstore.NewMemory()
	}

	api := upstream.New(cfg.Upstream, logger)
	registry := session.NewRegistry(store, api, logger)

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		BodyLimit:   32 * 1024 * 1024,
		ReadTimeout: cfg.App.RequestTimeout(),
	})
	portal.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := newHealthHandler(cfg, redisStore, metrics)
	portal.RegisterRoutes(app, portal.RouteConfig{
		Health:            healthHandler,
		Auth:              handlers.NewAuthHandler(),
		Dashboard:         handlers.NewDashboardHandler(api),
		Records:           handlers.NewRecordsHandler(api),
		Patients:          handlers.NewPatientsHandler(api),
		Chat:              handlers.NewChatHandler(api),
		Prediction:        handlers.NewPredictionHandler(api),
		Profile:           handlers.NewProfileHandler(api),
		SessionMiddleware: session.NewMiddleware(registry, cfg.Session.CookieName),
		ProfileGate:       guard.NewProfileGate(api, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.ShutdownWithTimeout(5 * time.Second)
}

func newHealthHandler(cfg *config.Config, redisStore *tokenstore.RedisStore, metrics *observability.Metrics) *handlers.HealthHandler {
	var pinger handlers.Pinger
	if redisStore != nil {
		pinger = redisStore
	}
	return handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pinger, metrics)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
