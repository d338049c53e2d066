package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/bookmountain/adelaide-uni-market-place/docs/swagger"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/app"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/cache"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/config"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/database"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/errhttp"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/mailer"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/storage"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/telemetry"
	catalogapi "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/api"
	identityapi "github.com/bookmountain/adelaide-uni-market-place/services/identity/application/api"
	orderingapi "github.com/bookmountain/adelaide-uni-market-place/services/ordering/application/api"
)

// @title						Adelaide Uni Marketplace API
// @version					1.0
// @description				Student marketplace: listings, images, orders and university-email accounts.
// @license.name				MIT
// @license.url				https://opensource.org/licenses/MIT
// @host						localhost:8080
// @BasePath					/api
// @schemes					http https
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Sentry is optional; keep serving without crash reporting.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	store, err := storage.New(cfg)
	if err != nil {
		log.Error("failed to setup object storage", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("object storage configured", "endpoint", cfg.StorageEndpoint, "bucket", cfg.StorageBucket)

	mail, err := mailer.New(cfg, log)
	if err != nil {
		log.Error("failed to setup mailer", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	metrics, err := telemetry.NewMarketplace()
	if err != nil {
		log.Error("failed to register marketplace metrics", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	sessionStore := auth.NewSessionStore(
		redisClient.Client(),
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.IsProduction(),
	)
	log.Info("session store initialized", "backend", "redis")

	errhttp.ExposeInternalErrors(!cfg.IsProduction())

	appConfig := &app.Application{
		Config:       cfg,
		Db:           pool,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		Storage:      store,
		Mailer:       mail,
		Tokens:       auth.NewTokenIssuer(cfg.JWTIssuer, cfg.JWTSigningKey, cfg.JWTTTL),
		SessionStore: sessionStore,
		Metrics:      metrics,
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			MaxBodyBytes:       cfg.MaxUploadBytes,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Tracing:  otelhttp.NewMiddleware(cfg.ServiceName),
			Logging:  logger.Middleware(log),
		},
	)

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		Database: pool,
		Redis:    redisClient,
		EventBus: eventBus,
		Storage:  store,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts every bounded context under /api.
func registerRoutes(r chi.Router, a *app.Application) {
	catalogapi.CatalogRoutes(r, a)
	orderingapi.OrderingRoutes(r, a)
	identityapi.IdentityRoutes(r, a)
}
