package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const healthProbeTimeout = 2 * time.Second

// HealthChecker is anything /health can ping: database.Database,
// cache.RedisClient, events.EventBus, storage.Store.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks lists the probed dependencies. Storage may be nil, in which
// case it is reported as "disabled" without degrading the status.
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
	Storage  HealthChecker
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	EventBus string `json:"event_bus"`
	Storage  string `json:"storage"`
}

// HealthHandler pings every dependency in parallel and answers 200 when all
// respond, 503 with the failing ones marked "unreachable" otherwise.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		probes := []struct {
			checker HealthChecker
			result  *string
		}{
			{checks.Database, &resp.Database},
			{checks.Redis, &resp.Redis},
			{checks.EventBus, &resp.EventBus},
			{checks.Storage, &resp.Storage},
		}

		var wg sync.WaitGroup
		for _, p := range probes {
			wg.Add(1)
			go func() {
				defer wg.Done()
				*p.result = probe(ctx, p.checker)
			}()
		}
		wg.Wait()

		for _, p := range probes {
			if *p.result == "unreachable" {
				resp.Status = "degraded"
			}
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}

func probe(ctx context.Context, c HealthChecker) string {
	switch {
	case c == nil:
		return "disabled"
	case c.Ping(ctx) != nil:
		return "unreachable"
	default:
		return "ok"
	}
}
