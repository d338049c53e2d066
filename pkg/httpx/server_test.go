package httpx_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
)

func newTestRouter(cfg httpx.ServerConfig) http.Handler {
	r := httpx.NewRouter(cfg, httpx.Middlewares{})
	r.Get("/api/categories", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, []string{"Textbooks"})
	})
	r.Post("/api/items/{itemID}/images", func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				httpx.JSONError(w, http.StatusRequestEntityTooLarge, "image too large")
				return
			}
			httpx.JSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	return r
}

func TestRouter_SecurityHeaders(t *testing.T) {
	h := newTestRouter(httpx.ServerConfig{ServiceName: "test"})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/categories", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rr.Header().Get("Referrer-Policy"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "img-src 'self' https:")
}

func TestRouter_UploadBodyLimit(t *testing.T) {
	h := newTestRouter(httpx.ServerConfig{MaxBodyBytes: 64})

	tests := []struct {
		name string
		size int
		want int
	}{
		{"within limit", 64, http.StatusCreated},
		{"over limit", 65, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.NewReader(strings.Repeat("x", tt.size))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/items/1/images", body))
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestCORSMiddleware_Credentials(t *testing.T) {
	preflight := func(allowed, origin string) http.Header {
		h := httpx.CORSMiddleware(allowed)(http.NotFoundHandler())
		req := httptest.NewRequest(http.MethodOptions, "/api/orders", http.NoBody)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Header()
	}

	explicit := preflight(" https://market.example.com , http://localhost:5173", "http://localhost:5173")
	assert.Equal(t, "http://localhost:5173", explicit.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", explicit.Get("Access-Control-Allow-Credentials"))

	wildcard := preflight("*", "http://anywhere.test")
	assert.Equal(t, "*", wildcard.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, wildcard.Get("Access-Control-Allow-Credentials"))

	rejected := preflight("https://market.example.com", "https://evil.test")
	assert.Empty(t, rejected.Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimit(t *testing.T) {
	h := newTestRouter(httpx.ServerConfig{RequestsPerMinute: 2})

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/categories", http.NoBody)
		req.RemoteAddr = "10.0.0.7:5000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/api/categories", http.NoBody)
	other.RemoteAddr = "10.0.0.8:5000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewServer_Timeouts(t *testing.T) {
	srv := httpx.NewServer(":8080", http.NotFoundHandler())

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 30*time.Second, srv.ReadTimeout)
	assert.Equal(t, 45*time.Second, srv.WriteTimeout)
	assert.Equal(t, 1<<20, srv.MaxHeaderBytes)
}
