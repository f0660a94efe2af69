package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the application workflow.
type Metrics struct {
	Submissions      *prometheus.CounterVec
	Decisions        *prometheus.CounterVec
	CaseLinkFailures prometheus.Counter
	// Placeholder names served because a prisoner lookup failed.
	ProjectionDegraded prometheus.Counter
	ProjectionLatency  prometheus.Histogram
}

// New registers the metrics with reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "counsel_application_submissions_total",
			Help: "Application submissions by outcome",
		}, []string{"outcome"}), // outcome: "created", "conflict", "rejected"

		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "counsel_application_decisions_total",
			Help: "Decisions by outcome",
		}, []string{"outcome"}), // outcome: "accepted", "rejected", "conflict", "forbidden"

		CaseLinkFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "counsel_case_link_failures_total",
			Help: "Accepted applications whose case could not be linked",
		}),

		ProjectionDegraded: f.NewCounter(prometheus.CounterOpts{
			Name: "counsel_notification_degraded_items_total",
			Help: "Notification items served with a placeholder prisoner name",
		}),

		ProjectionLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "counsel_notification_projection_duration_seconds",
			Help:    "Duration of building a lawyer's notification list",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) IncSubmission(outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncDecision(outcome string) {
	if m != nil {
		m.Decisions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncCaseLinkFailure() {
	if m != nil {
		m.CaseLinkFailures.Inc()
	}
}

func (m *Metrics) AddDegraded(n int) {
	if m != nil && n > 0 {
		m.ProjectionDegraded.Add(float64(n))
	}
}

func (m *Metrics) ObserveProjection(d time.Duration) {
	if m != nil {
		m.ProjectionLatency.Observe(d.Seconds())
	}
}
