package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &m), l)
		out = append(out, m)
	}
	return out
}

func last(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	all := lines(t, buf)
	require.NotEmpty(t, all, "no log output")
	return all[len(all)-1]
}

func TestContextHandler_SpanFields(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := tp.Tracer("logger-test")

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	log.InfoContext(context.Background(), "outside")
	entry := last(t, &buf)
	assert.NotContains(t, entry, "trace_id")
	assert.NotContains(t, entry, "span_id")

	ctx, parent := tracer.Start(context.Background(), "parent")
	log.InfoContext(ctx, "parent")
	parentEntry := last(t, &buf)

	childCtx, child := tracer.Start(ctx, "child")
	log.ErrorContext(childCtx, "child", "error", errors.New("boom"))
	childEntry := last(t, &buf)
	child.End()
	parent.End()

	assert.Equal(t, parent.SpanContext().TraceID().String(), parentEntry["trace_id"])
	assert.Equal(t, parentEntry["trace_id"], childEntry["trace_id"])
	assert.NotEqual(t, parentEntry["span_id"], childEntry["span_id"])
	assert.Equal(t, "boom", childEntry["error"])
}

func TestWithAttrs_Accumulate(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	ctx := WithAttrs(context.Background(), "user_id", "u-1")
	ctx = WithAttrs(ctx, "listing_id", "l-9")
	assert.Equal(t, ctx, WithAttrs(ctx))

	log.InfoContext(ctx, "reserved")
	entry := last(t, &buf)
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Equal(t, "l-9", entry["listing_id"])

	log.Info("plain")
	assert.NotContains(t, last(t, &buf), "user_id")
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn").With("component", "worker")

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept", "listing_id", "abc")
	entry := last(t, &buf)
	assert.Equal(t, "abc", entry["listing_id"])
	assert.Equal(t, "worker", entry["component"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing")
	assert.False(t, log.ToSlog().Enabled(context.Background(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"warn+1":  slog.LevelWarn + 1,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Middleware(log))
	r.Get("/api/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Post("/api/orders", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	r.Get("/api/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream"))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		method, path string
		level        string
		status       float64
		route        string
	}{
		{http.MethodGet, "/api/items/42", "INFO", 200, "/api/items/{id}"},
		{http.MethodPost, "/api/orders", "WARN", 409, "/api/orders"},
		{http.MethodGet, "/api/broken", "ERROR", 502, "/api/broken"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf.Reset()
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, http.NoBody))

			entry := last(t, &buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.status, entry["status"])
			assert.Equal(t, tt.route, entry["route"])
			assert.Equal(t, tt.path, entry["path"])
			assert.NotEmpty(t, entry["request_id"])
		})
	}

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/items/7", http.NoBody))
	assert.EqualValues(t, len(`{"ok":true}`), last(t, &buf)["bytes"])

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	assert.Zero(t, buf.Len(), "health probes log below info")
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	h := Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil listing")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items/1", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())

	entry := last(t, &buf)
	assert.Equal(t, "nil listing", entry["panic"])
	assert.Contains(t, entry["stack"], "runtime/debug.Stack")
}

func TestRecovery_AbortHandlerPropagates(t *testing.T) {
	h := Recovery(Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	})
}
