package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"counsel/internal/representation/models"
	"counsel/internal/representation/ports"
	id "counsel/pkg/domain"
)

// PendingSource is the ledger read the projector depends on.
type PendingSource interface {
	ListPendingFor(ctx context.Context, lawyerID id.LawyerID) ([]*models.Application, error)
}

// Projector builds a lawyer's notification view. Nothing is cached.
type Projector struct {
	ledger   PendingSource
	identity ports.IdentityPort
	options
}

func NewProjector(ledger PendingSource, identity ports.IdentityPort, opts ...Option) (*Projector, error) {
	if ledger == nil {
		return nil, errors.New("pending source is required")
	}
	if identity == nil {
		return nil, errors.New("identity port is required")
	}
	return &Projector{ledger: ledger, identity: identity, options: buildOptions(opts)}, nil
}

// GetNotifications lists the lawyer's pending applications with prisoner
// display info, in ledger order. A failed prisoner lookup yields a
// placeholder name for that item instead of failing the list.
func (p *Projector) GetNotifications(ctx context.Context, lawyerID id.LawyerID) ([]models.Notification, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "projector.GetNotifications", trace.WithAttributes(
		attribute.String("lawyer_id", lawyerID.String()),
	))
	defer span.End()
	defer func() { p.metrics.ObserveProjection(time.Since(start)) }()

	apps, err := p.ledger.ListPendingFor(ctx, lawyerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := make([]models.Notification, len(apps))

	var g errgroup.Group
	g.SetLimit(p.lookupConcurrency)
	for i, app := range apps {
		g.Go(func() error {
			out[i] = p.project(ctx, app)
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for _, item := range out {
		if item.Degraded {
			n++
		}
	}
	p.metrics.AddDegraded(n)
	span.SetAttributes(attribute.Int("notifications", len(out)), attribute.Int("degraded", n))
	return out, nil
}

func (p *Projector) project(ctx context.Context, app *models.Application) models.Notification {
	n := models.Notification{
		ApplicationID: app.ID,
		PrisonerID:    app.PrisonerID,
		CaseID:        app.CaseID,
		AppliedAt:     app.CreatedAt,
	}
	lctx, cancel := p.bounded(ctx)
	defer cancel()
	info, err := p.identity.PrisonerDisplayInfo(lctx, app.PrisonerID)
	if err != nil {
		p.logger.Warn("prisoner lookup failed, using placeholder",
			zap.String("application_id", app.ID.String()),
			zap.String("prisoner_id", app.PrisonerID.String()),
			zap.Error(err),
		)
		n.PrisonerName = models.UnknownPrisonerName
		n.Degraded = true
		return n
	}
	n.PrisonerName = info.Name
	n.PrisonerEmail = info.Email
	return n
}
