package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"counsel/internal/audit"
	"counsel/internal/representation/models"
	"counsel/internal/representation/ports"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/sentinel"
	"counsel/pkg/requestcontext"
)

// Ledger is the only writer of applications.
type Ledger struct {
	store    LedgerStore
	identity ports.IdentityPort
	cases    ports.CasePort
	options
}

func NewLedger(store LedgerStore, identity ports.IdentityPort, cases ports.CasePort, opts ...Option) (*Ledger, error) {
	if store == nil {
		return nil, errors.New("ledger store is required")
	}
	if identity == nil {
		return nil, errors.New("identity port is required")
	}
	if cases == nil {
		return nil, errors.New("case port is required")
	}
	return &Ledger{store: store, identity: identity, cases: cases, options: buildOptions(opts)}, nil
}

// Submit creates a pending application from prisonerID to lawyerID. caseID
// is optional and must belong to the prisoner.
func (l *Ledger) Submit(ctx context.Context, prisonerID id.PrisonerID, lawyerID id.LawyerID, caseID *id.CaseID) (*models.Application, error) {
	ctx, span := tracer.Start(ctx, "ledger.Submit", trace.WithAttributes(
		attribute.String("prisoner_id", prisonerID.String()),
		attribute.String("lawyer_id", lawyerID.String()),
	))
	defer span.End()

	app, err := l.submit(ctx, prisonerID, lawyerID, caseID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			l.metrics.IncSubmission("conflict")
		} else {
			l.metrics.IncSubmission("rejected")
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("application_id", app.ID.String()))
	l.metrics.IncSubmission("created")

	l.emit(ctx, audit.Event{
		Action:     audit.ActionApplicationSubmitted,
		Subject:    app.ID.String(),
		PrisonerID: prisonerID.String(),
		LawyerID:   lawyerID.String(),
	})
	l.logger.Info("application submitted",
		zap.String("request_id", requestcontext.RequestID(ctx)),
		zap.String("application_id", app.ID.String()),
		zap.String("prisoner_id", prisonerID.String()),
		zap.String("lawyer_id", lawyerID.String()),
	)
	return app, nil
}

func (l *Ledger) submit(ctx context.Context, prisonerID id.PrisonerID, lawyerID id.LawyerID, caseID *id.CaseID) (*models.Application, error) {
	if err := l.requirePrisoner(ctx, prisonerID); err != nil {
		return nil, err
	}
	if err := l.requireLawyer(ctx, lawyerID); err != nil {
		return nil, err
	}
	if caseID != nil {
		if err := l.requireCaseOwnedBy(ctx, *caseID, prisonerID); err != nil {
			return nil, err
		}
	}

	app, err := models.NewApplication(id.NewApplicationID(), prisonerID, lawyerID, caseID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	sctx, cancel := l.bounded(ctx)
	defer cancel()
	if err := l.store.Create(sctx, app); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "a pending application to this lawyer already exists")
		}
		return nil, wrapLedgerErr(err, "failed to create application")
	}
	return app, nil
}

func (l *Ledger) requirePrisoner(ctx context.Context, prisonerID id.PrisonerID) error {
	cctx, cancel := l.bounded(ctx)
	defer cancel()
	ok, err := l.identity.PrisonerExists(cctx, prisonerID)
	if err != nil {
		return wrapCollaboratorErr(err, "failed to look up prisoner")
	}
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "prisoner not found")
	}
	return nil
}

func (l *Ledger) requireLawyer(ctx context.Context, lawyerID id.LawyerID) error {
	cctx, cancel := l.bounded(ctx)
	defer cancel()
	ok, err := l.identity.LawyerExists(cctx, lawyerID)
	if err != nil {
		return wrapCollaboratorErr(err, "failed to look up lawyer")
	}
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "lawyer not found")
	}
	return nil
}

func (l *Ledger) requireCaseOwnedBy(ctx context.Context, caseID id.CaseID, prisonerID id.PrisonerID) error {
	cctx, cancel := l.bounded(ctx)
	defer cancel()
	owner, err := l.cases.CaseOwner(cctx, caseID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "case not found")
		}
		return wrapCollaboratorErr(err, "failed to look up case")
	}
	if owner != prisonerID {
		return dErrors.New(dErrors.CodeBadRequest, "case does not belong to the prisoner")
	}
	return nil
}

// ListPendingFor returns the lawyer's pending applications, oldest first with
// ties broken by id. Every call reads the store.
func (l *Ledger) ListPendingFor(ctx context.Context, lawyerID id.LawyerID) ([]*models.Application, error) {
	sctx, cancel := l.bounded(ctx)
	defer cancel()
	apps, err := l.store.ListPendingByLawyer(sctx, lawyerID)
	if err != nil {
		return nil, wrapLedgerErr(err, "failed to list pending applications")
	}
	return apps, nil
}

func (l *Ledger) Get(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error) {
	sctx, cancel := l.bounded(ctx)
	defer cancel()
	app, err := l.store.FindByID(sctx, applicationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, wrapLedgerErr(err, "failed to load application")
	}
	return app, nil
}

// ListByPrisoner returns every application of the prisoner in any status.
func (l *Ledger) ListByPrisoner(ctx context.Context, prisonerID id.PrisonerID) ([]*models.Application, error) {
	sctx, cancel := l.bounded(ctx)
	defer cancel()
	apps, err := l.store.ListByPrisoner(sctx, prisonerID)
	if err != nil {
		return nil, wrapLedgerErr(err, "failed to list applications")
	}
	return apps, nil
}

// Finalize moves a pending application to accepted or rejected. It fails with
// invalid_transition when the application is already terminal.
func (l *Ledger) Finalize(ctx context.Context, applicationID id.ApplicationID, target models.Status) (*models.Application, error) {
	if !target.IsTerminal() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "target status must be accepted or rejected")
	}
	sctx, cancel := l.bounded(ctx)
	defer cancel()
	app, err := l.store.Finalize(sctx, applicationID, target, models.TruncateTime(requestcontext.Now(ctx)))
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		case errors.Is(err, sentinel.ErrInvalidState):
			return nil, dErrors.New(dErrors.CodeInvalidTransition, "application has already been decided")
		default:
			return nil, wrapLedgerErr(err, "failed to finalize application")
		}
	}
	return app, nil
}
