package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"counsel/internal/platform/metrics"
	"counsel/pkg/requestcontext"
)

func TestLatencyUsesRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(Latency(m))
	r.Get("/lawyers/{lawyerID}/notifications", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lawyers/abc/notifications", nil))

	assert.Equal(t, 1.0, promtest.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/lawyers/{lawyerID}/notifications", "418")))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := chi.NewRouter()
	r.Use(chimw.RequestID, RequestLogger(zap.New(core)))
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
		assert.NotEmpty(t, entries[1].ContextMap()["request_id"])
	}
}

func TestRequestLoggerClientFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := chi.NewRouter()
	r.Use(RequestLogger(zap.New(core)))
	r.Get("/lawyers", func(w http.ResponseWriter, r *http.Request) {})

	browser := httptest.NewRequest(http.MethodGet, "/lawyers", nil)
	browser.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0")
	r.ServeHTTP(httptest.NewRecorder(), browser)

	bot := httptest.NewRequest(http.MethodGet, "/lawyers", nil)
	bot.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	r.ServeHTTP(httptest.NewRecorder(), bot)

	bare := httptest.NewRequest(http.MethodGet, "/lawyers", nil)
	bare.Header.Del("User-Agent")
	r.ServeHTTP(httptest.NewRecorder(), bare)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "Firefox", entries[0].ContextMap()["client"])
	assert.Equal(t, false, entries[0].ContextMap()["mobile"])
	assert.Equal(t, true, entries[1].ContextMap()["bot"])
	assert.NotContains(t, entries[2].ContextMap(), "client")
}

func TestRequestIDBridge(t *testing.T) {
	var got string
	h := chimw.RequestID(RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = requestcontext.RequestID(r.Context())
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, got)
}
