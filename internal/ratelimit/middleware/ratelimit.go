// Package middleware throttles callers with a sliding-window limit.
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"counsel/internal/ratelimit/metrics"
	"counsel/internal/ratelimit/models"
	"counsel/pkg/platform/httputil"
	"counsel/pkg/platform/middleware/metadata"
	"counsel/pkg/requestcontext"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

type Middleware struct {
	limiter Limiter
	limit   int
	window  time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

type Option func(*Middleware)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Middleware) {
		m.logger = logger
	}
}

func WithMetrics(metrics *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = metrics
	}
}

func New(limiter Limiter, limit int, window time.Duration, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		limit:   limit,
		window:  window,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RateLimit keys authenticated callers by subject and anonymous ones by
// client address. A failing limiter lets the request through.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key, kind := m.key(r)

		result, err := m.limiter.Allow(ctx, key, m.limit, m.window)
		if err != nil {
			m.metrics.IncCheckError()
			m.logger.Error("rate limit check failed",
				zap.String("request_id", chimw.GetReqID(ctx)),
				zap.String("kind", kind),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			m.metrics.IncRejection(kind)
			m.logger.Warn("rate limit exceeded",
				zap.String("request_id", chimw.GetReqID(ctx)),
				zap.String("kind", kind),
				zap.String("path", r.URL.Path),
			)
			writeRateLimitExceeded(w, result)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) key(r *http.Request) (string, string) {
	if caller, ok := requestcontext.Actor(r.Context()); ok && caller.Subject != "" {
		return models.KeyPrefixCaller + caller.Subject, "caller"
	}
	ip := metadata.GetClientIP(r.Context())
	if ip == "" {
		ip = metadata.ClientIPFromRequest(r)
	}
	return models.KeyPrefixIP + ip, "ip"
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.ExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests. Please try again later.",
		RetryAfter: result.RetryAfter,
	})
}
