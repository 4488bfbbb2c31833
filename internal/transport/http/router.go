// Package httptransport assembles the chi router: shared middleware, the
// unauthenticated relay and operational endpoints, and the authenticated API.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ixcbridge/internal/platform/metrics"
	"ixcbridge/pkg/platform/httputil"
	"ixcbridge/pkg/platform/middleware/auth"
	"ixcbridge/pkg/platform/middleware/metadata"
	"ixcbridge/pkg/platform/middleware/request"
	"ixcbridge/pkg/platform/middleware/requesttime"
)

// RelayPrefix is where the upstream relay is mounted.
const RelayPrefix = "/api/ixc"

// Registrar is implemented by every feature handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Config struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Validator auth.JWTValidator
	// Relay is served under RelayPrefix without authentication; the upstream
	// client reaches it over loopback.
	Relay    http.Handler
	Checks   map[string]HealthCheck
	Handlers []Registrar
}

func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Recovery(logger))
	r.Use(request.Logger(logger))
	r.Use(requesttime.Middleware)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/health", healthHandler(cfg.Checks))
	r.Handle("/metrics", promhttp.Handler())
	if cfg.Relay != nil {
		r.Handle(RelayPrefix, cfg.Relay)
		r.Handle(RelayPrefix+"/*", cfg.Relay)
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(cfg.Validator, logger))
		for _, h := range cfg.Handlers {
			h.Register(r)
		}
	})
	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		out := map[string]string{"status": "ok"}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				out["status"] = "degraded"
				out[name] = err.Error()
				continue
			}
			out[name] = "ok"
		}
		httputil.WriteJSON(w, status, out)
	}
}
