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
	"counsel/pkg/requestcontext"
)

// DecisionLedger is the ledger surface the processor drives.
type DecisionLedger interface {
	Get(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error)
	Finalize(ctx context.Context, applicationID id.ApplicationID, target models.Status) (*models.Application, error)
}

// Processor applies a lawyer's decision to an application.
type Processor struct {
	ledger DecisionLedger
	cases  ports.CasePort
	options
}

func NewProcessor(ledger DecisionLedger, cases ports.CasePort, opts ...Option) (*Processor, error) {
	if ledger == nil {
		return nil, errors.New("decision ledger is required")
	}
	if cases == nil {
		return nil, errors.New("case port is required")
	}
	return &Processor{ledger: ledger, cases: cases, options: buildOptions(opts)}, nil
}

// Decide records lawyerID's decision on an application. Checks run in order:
// the application exists, it is addressed to lawyerID, the decision is
// accept or reject. Only the first decision on an application succeeds; later
// ones fail with conflict. On accept the case link is best effort: a failure
// is reported in the result, not returned.
func (p *Processor) Decide(ctx context.Context, lawyerID id.LawyerID, applicationID id.ApplicationID, decision string) (*models.DecisionResult, error) {
	ctx, span := tracer.Start(ctx, "processor.Decide", trace.WithAttributes(
		attribute.String("lawyer_id", lawyerID.String()),
		attribute.String("application_id", applicationID.String()),
	))
	defer span.End()

	result, err := p.decide(ctx, lawyerID, applicationID, decision)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		return nil, err
	}
	span.SetAttributes(
		attribute.String("status", string(result.Application.Status)),
		attribute.Bool("case_updated", result.CaseUpdated),
	)
	return result, nil
}

func (p *Processor) decide(ctx context.Context, lawyerID id.LawyerID, applicationID id.ApplicationID, raw string) (*models.DecisionResult, error) {
	app, err := p.ledger.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.LawyerID != lawyerID {
		p.metrics.IncDecision("forbidden")
		return nil, dErrors.New(dErrors.CodeForbidden, "application is addressed to another lawyer")
	}
	decision, err := models.ParseDecision(raw)
	if err != nil {
		return nil, err
	}

	finalized, err := p.ledger.Finalize(ctx, applicationID, decision.TargetStatus())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidTransition) {
			p.metrics.IncDecision("conflict")
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "decision not applied")
		}
		return nil, err
	}
	p.metrics.IncDecision(string(finalized.Status))

	result := &models.DecisionResult{Application: finalized}
	if decision == models.DecisionAccept {
		p.linkCase(ctx, finalized, result)
	}

	action := audit.ActionApplicationRejected
	if decision == models.DecisionAccept {
		action = audit.ActionApplicationAccepted
	}
	p.emit(ctx, audit.Event{
		Action:     action,
		Subject:    finalized.ID.String(),
		PrisonerID: finalized.PrisonerID.String(),
		LawyerID:   finalized.LawyerID.String(),
		Decision:   string(decision),
		Reason:     result.Warning,
	})
	p.logger.Info("application decided",
		zap.String("request_id", requestcontext.RequestID(ctx)),
		zap.String("application_id", finalized.ID.String()),
		zap.String("lawyer_id", lawyerID.String()),
		zap.String("status", string(finalized.Status)),
		zap.Bool("case_updated", result.CaseUpdated),
	)
	return result, nil
}

// linkCase assigns the lawyer to the named case, or to every unassigned case
// of the prisoner when none is named.
func (p *Processor) linkCase(ctx context.Context, app *models.Application, result *models.DecisionResult) {
	cctx, cancel := p.bounded(ctx)
	defer cancel()

	if app.CaseID != nil {
		if err := p.cases.AssignCase(cctx, *app.CaseID, app.LawyerID); err != nil {
			p.degradeLink(ctx, app, result, err)
			return
		}
		result.CaseUpdated = true
		result.LinkedCases = []id.CaseID{*app.CaseID}
		return
	}

	changed, err := p.cases.AssignUnassignedCases(cctx, app.PrisonerID, app.LawyerID)
	if err != nil {
		p.degradeLink(ctx, app, result, err)
		return
	}
	if len(changed) == 0 {
		p.degradeLink(ctx, app, result, nil)
		return
	}
	result.CaseUpdated = true
	result.LinkedCases = changed
}

func (p *Processor) degradeLink(ctx context.Context, app *models.Application, result *models.DecisionResult, cause error) {
	result.CaseUpdated = false
	result.Warning = linkWarning(cause)
	p.metrics.IncCaseLinkFailure()

	fields := []zap.Field{
		zap.String("request_id", requestcontext.RequestID(ctx)),
		zap.String("application_id", app.ID.String()),
		zap.String("prisoner_id", app.PrisonerID.String()),
		zap.String("warning", result.Warning),
	}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	p.logger.Warn("application accepted but case not linked", fields...)

	p.emit(ctx, audit.Event{
		Action:     audit.ActionCaseLinkFailed,
		Subject:    app.ID.String(),
		PrisonerID: app.PrisonerID.String(),
		LawyerID:   app.LawyerID.String(),
		Reason:     result.Warning,
	})
}

func linkWarning(cause error) string {
	switch {
	case cause == nil:
		return "no unassigned case found for the prisoner"
	case errors.Is(cause, context.DeadlineExceeded), dErrors.HasCode(cause, dErrors.CodeTimeout):
		return "case store timed out; case not linked"
	case dErrors.HasCode(cause, dErrors.CodeNotFound):
		return "case not found; case not linked"
	case dErrors.HasCode(cause, dErrors.CodeConflict):
		return "case is assigned to another lawyer; case not linked"
	default:
		return "case store unavailable; case not linked"
	}
}
