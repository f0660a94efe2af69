// Package service owns case lookups and lawyer assignment.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"counsel/internal/cases/models"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/sentinel"
	"counsel/pkg/requestcontext"
)

type Store interface {
	FindByID(ctx context.Context, caseID id.CaseID) (*models.Case, error)
	ListByLawyer(ctx context.Context, lawyerID id.LawyerID) ([]*models.Case, error)
	ListByPrisoner(ctx context.Context, prisonerID id.PrisonerID) ([]*models.Case, error)
	AssignLawyer(ctx context.Context, caseID id.CaseID, lawyerID id.LawyerID, now time.Time) error
	AssignUnassigned(ctx context.Context, prisonerID id.PrisonerID, lawyerID id.LawyerID, now time.Time) ([]id.CaseID, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetCase(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	c, err := s.store.FindByID(ctx, caseID)
	if err != nil {
		return nil, wrapCaseErr(err, "failed to load case")
	}
	return c, nil
}

func (s *Service) GetCasesByLawyer(ctx context.Context, lawyerID id.LawyerID) ([]*models.Case, error) {
	cases, err := s.store.ListByLawyer(ctx, lawyerID)
	if err != nil {
		return nil, wrapCaseErr(err, "failed to list cases")
	}
	return cases, nil
}

func (s *Service) ListByPrisoner(ctx context.Context, prisonerID id.PrisonerID) ([]*models.Case, error) {
	cases, err := s.store.ListByPrisoner(ctx, prisonerID)
	if err != nil {
		return nil, wrapCaseErr(err, "failed to list cases")
	}
	return cases, nil
}

// SetAssignedLawyer assigns lawyerID to one case. A case already held by a
// different lawyer is a conflict.
func (s *Service) SetAssignedLawyer(ctx context.Context, caseID id.CaseID, lawyerID id.LawyerID) error {
	if err := s.store.AssignLawyer(ctx, caseID, lawyerID, requestcontext.Now(ctx)); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeConflict, "case is assigned to another lawyer")
		}
		return wrapCaseErr(err, "failed to assign case")
	}
	s.logger.Info("case assigned",
		zap.String("case_id", caseID.String()),
		zap.String("lawyer_id", lawyerID.String()),
	)
	return nil
}

// AssignUnassignedCases assigns lawyerID to every case of the prisoner that
// has no lawyer yet and returns the ids it changed.
func (s *Service) AssignUnassignedCases(ctx context.Context, prisonerID id.PrisonerID, lawyerID id.LawyerID) ([]id.CaseID, error) {
	changed, err := s.store.AssignUnassigned(ctx, prisonerID, lawyerID, requestcontext.Now(ctx))
	if err != nil {
		return nil, wrapCaseErr(err, "failed to assign cases")
	}
	s.logger.Info("cases assigned",
		zap.String("prisoner_id", prisonerID.String()),
		zap.String("lawyer_id", lawyerID.String()),
		zap.Int("count", len(changed)),
	)
	return changed, nil
}

func wrapCaseErr(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "case not found")
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
