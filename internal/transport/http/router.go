// Package httptransport assembles the public HTTP surface.
package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"counsel/internal/platform/metrics"
	platformmw "counsel/internal/platform/middleware"
	"counsel/pkg/platform/httputil"
	"counsel/pkg/platform/middleware/auth"
	"counsel/pkg/platform/middleware/metadata"
	"counsel/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by every domain handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type RouterConfig struct {
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
	// Validator enables bearer auth on the protected routes when set.
	Validator auth.TokenValidator
	// RateLimit wraps the protected routes after authentication.
	RateLimit func(http.Handler) http.Handler
	// Public handlers are mounted without authentication.
	Public    []Registrar
	Protected []Registrar
	Health    map[string]HealthCheck
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(metadata.ClientMetadata)
	r.Use(platformmw.RequestID)
	r.Use(platformmw.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(platformmw.Latency(cfg.Metrics))
	r.Use(requesttime.Middleware)
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", healthHandler(cfg.Health))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	for _, h := range cfg.Public {
		h.Register(r)
	}
	r.Group(func(r chi.Router) {
		if cfg.Validator != nil {
			r.Use(auth.RequireAuth(cfg.Validator, logger))
		}
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit)
		}
		for _, h := range cfg.Protected {
			h.Register(r)
		}
	})
	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[name] = err.Error()
				continue
			}
			body[name] = "ok"
		}
		httputil.WriteJSON(w, status, body)
	}
}
