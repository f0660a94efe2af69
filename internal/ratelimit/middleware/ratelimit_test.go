package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counsel/internal/ratelimit/metrics"
	"counsel/internal/ratelimit/models"
	"counsel/internal/ratelimit/store/bucket"
	"counsel/pkg/platform/middleware/metadata"
	httptestutil "counsel/pkg/testutil"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (*models.Result, error) {
	return nil, errors.New("redis: connection refused")
}

type recordingLimiter struct{ keys []string }

func (l *recordingLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	l.keys = append(l.keys, key)
	return &models.Result{Allowed: true, Limit: limit, Remaining: limit - 1, ResetAt: time.Now().Add(window)}, nil
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	h := New(bucket.NewInMemoryBucketStore(), 2, time.Minute, WithMetrics(m)).RateLimit(ok)

	for range 2 {
		rr := httptestutil.DoRequest(h, httptestutil.AsLawyer(httptestutil.NewRequest(t, http.MethodGet, "/"), "lawyer-1"))
		require.Equal(t, http.StatusNoContent, rr.Code)
	}

	rr := httptestutil.DoRequest(h, httptestutil.AsLawyer(httptestutil.NewRequest(t, http.MethodGet, "/"), "lawyer-1"))
	httptestutil.AssertStatus(t, rr, http.StatusTooManyRequests)
	httptestutil.AssertJSONContains(t, rr, "error", "rate_limit_exceeded")
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("caller")))

	rr = httptestutil.DoRequest(h, httptestutil.AsLawyer(httptestutil.NewRequest(t, http.MethodGet, "/"), "lawyer-2"))
	assert.Equal(t, http.StatusNoContent, rr.Code, "other callers keep their own budget")
}

func TestRateLimitKeys(t *testing.T) {
	limiter := &recordingLimiter{}
	h := New(limiter, 10, time.Minute).RateLimit(ok)

	httptestutil.DoRequest(h, httptestutil.AsPrisoner(httptestutil.NewRequest(t, http.MethodGet, "/"), "p-1"))

	req := httptestutil.NewRequest(t, http.MethodGet, "/")
	req = req.WithContext(metadata.WithClientMetadata(req.Context(), "203.0.113.7", "curl"))
	httptestutil.DoRequest(h, req)

	req = httptestutil.NewRequest(t, http.MethodGet, "/")
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	httptestutil.DoRequest(h, req)

	assert.Equal(t, []string{
		models.KeyPrefixCaller + "p-1",
		models.KeyPrefixIP + "203.0.113.7",
		models.KeyPrefixIP + "198.51.100.1",
	}, limiter.keys)
}

func TestRateLimitFailsOpen(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	h := New(failingLimiter{}, 1, time.Minute, WithMetrics(m)).RateLimit(ok)

	rr := httptestutil.DoRequest(h, httptestutil.NewRequest(t, http.MethodGet, "/"))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckErrors))
}
