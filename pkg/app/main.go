package app

import (
	"github.com/gorilla/sessions"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/cache"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/config"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/database"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/events"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/mailer"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/storage"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all bounded
// contexts. It is passed to each context's Routes function at startup.
//
// Logger is backed by a trace-aware handler. Use the context methods so
// trace_id, span_id and request_id are attached:
//
//	app.Logger.InfoContext(ctx, "listing created", "item_id", id)
//
// Storage, Mailer, Tokens and SessionStore are nil in the worker process.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	Storage      *storage.Store
	Mailer       mailer.Sender
	Tokens       *auth.TokenIssuer
	SessionStore sessions.Store
	Metrics      *telemetry.Marketplace
}
