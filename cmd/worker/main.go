package main

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/app"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/cache"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/config"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/database"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/telemetry"
	catalogpg "github.com/bookmountain/adelaide-uni-market-place/services/catalog/infrastructure/persistence/postgres"
)

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	a := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, a); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	<-ctx.Done()
	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers subscribes every handler in subscribers.routes and
// drains each subscription's error channel.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	subs := &subscribers{
		listings: catalogpg.NewCatalogRepository(a.Db, nil),
		cache:    cache.NewListingCache(a.Redis),
		log:      a.Logger,
	}

	routes := subs.routes()
	topics := slices.Sorted(maps.Keys(routes))

	for _, topic := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, routes[topic])
		if err != nil {
			return err
		}
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}
