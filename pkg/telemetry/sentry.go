package telemetry

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/config"
)

const redacted = "[redacted]"

// credentialHeaders never leave the process: bearer tokens and the session
// cookie both authenticate a student.
var credentialHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}

// SetupSentry initialises crash reporting. An empty SENTRY_DSN disables it.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		TracesSampleRate: productionTraceRatio,
		BeforeSend:       scrubCredentials,
	})
	if err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

func scrubCredentials(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event == nil || event.Request == nil {
		return event
	}
	event.Request.Cookies = ""
	for name := range event.Request.Headers {
		for _, h := range credentialHeaders {
			if strings.EqualFold(name, h) {
				event.Request.Headers[name] = redacted
			}
		}
	}
	return event
}

// SentryFlush waits up to 2s for queued reports.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware reports panics and re-panics so logger.Recovery still
// writes the 500.
func SentryMiddleware() func(http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle
}
