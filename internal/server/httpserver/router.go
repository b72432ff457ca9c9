package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/cloudward/console-gate/internal/server/httpserver/handler"
	"github.com/cloudward/console-gate/internal/telemetry/metric"
)

// RouterConfig carries what the router needs beyond the handler.
type RouterConfig struct {
	Logger  *slog.Logger
	Metrics *metric.Metrics

	// LoginRatePerMinute throttles login attempts per client IP.
	// Zero disables the limiter.
	LoginRatePerMinute int
}

// NewRouter builds the HTTP routing table with the standard
// middleware chain applied to the action endpoint.
func NewRouter(h *handler.Handler, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	middlewares := []Middleware{
		RequestID(),
		Recover(cfg.Logger),
		AccessLog(cfg.Logger),
	}
	if cfg.LoginRatePerMinute > 0 {
		middlewares = append(middlewares, LoginRateLimit(cfg.LoginRatePerMinute))
	}

	mux.Handle("POST /", Chain(http.HandlerFunc(h.Dispatch), middlewares...))
	mux.Handle("GET /checkip", Chain(http.HandlerFunc(h.CheckIP), middlewares...))
	mux.Handle("GET /metrics", cfg.Metrics.Handler())
	mux.Handle("GET /", Chain(http.HandlerFunc(h.Shell), middlewares...))

	return mux
}
