// Package service implements the application ledger, the lawyer notification
// view and the decision state machine.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"counsel/internal/audit"
	"counsel/internal/representation/metrics"
	"counsel/internal/representation/ports"
)

const (
	DefaultStoreTimeout      = 3 * time.Second
	DefaultLookupConcurrency = 8
)

var tracer = otel.Tracer("counsel/representation")

type options struct {
	logger            *zap.Logger
	metrics           *metrics.Metrics
	auditor           ports.AuditPort
	storeTimeout      time.Duration
	lookupConcurrency int
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithAuditor records submissions and decisions. Audit failures are logged
// and never fail the operation.
func WithAuditor(auditor ports.AuditPort) Option {
	return func(o *options) {
		o.auditor = auditor
	}
}

// WithStoreTimeout bounds every store and collaborator call. Zero disables
// the bound.
func WithStoreTimeout(d time.Duration) Option {
	return func(o *options) {
		o.storeTimeout = d
	}
}

func WithLookupConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.lookupConcurrency = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:            zap.NewNop(),
		storeTimeout:      DefaultStoreTimeout,
		lookupConcurrency: DefaultLookupConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, o.storeTimeout)
}

func (o options) emit(ctx context.Context, event audit.Event) {
	if o.auditor == nil {
		return
	}
	if err := o.auditor.Emit(ctx, event); err != nil {
		o.logger.Warn("audit emit failed",
			zap.String("action", event.Action),
			zap.String("subject", event.Subject),
			zap.Error(err),
		)
	}
}
