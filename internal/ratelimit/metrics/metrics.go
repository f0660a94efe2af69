package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejections  *prometheus.CounterVec
	CheckErrors prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "counsel_ratelimit_rejections_total",
			Help: "Requests rejected by the rate limiter, by key kind",
		}, []string{"kind"}),
		CheckErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "counsel_ratelimit_check_errors_total",
			Help: "Rate limit checks that failed and let the request through",
		}),
	}
}

func (m *Metrics) IncRejection(kind string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncCheckError() {
	if m == nil {
		return
	}
	m.CheckErrors.Inc()
}
