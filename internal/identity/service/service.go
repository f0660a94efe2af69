// Package service answers identity questions for the rest of the system:
// does this person exist, and how should they be displayed.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"counsel/internal/identity/models"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/sentinel"
)

type Store interface {
	FindPrisoner(ctx context.Context, prisonerID id.PrisonerID) (*models.Prisoner, error)
	FindLawyer(ctx context.Context, lawyerID id.LawyerID) (*models.Lawyer, error)
	ListLawyers(ctx context.Context, filter models.LawyerFilter) ([]*models.Lawyer, error)
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

// PrisonerExists reports whether the prisoner exists and is active.
func (s *Service) PrisonerExists(ctx context.Context, prisonerID id.PrisonerID) (bool, error) {
	p, err := s.store.FindPrisoner(ctx, prisonerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, wrapStoreErr(err, "failed to load prisoner")
	}
	return p.Active, nil
}

// LawyerExists reports whether the lawyer exists and is active.
func (s *Service) LawyerExists(ctx context.Context, lawyerID id.LawyerID) (bool, error) {
	l, err := s.store.FindLawyer(ctx, lawyerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, wrapStoreErr(err, "failed to load lawyer")
	}
	return l.Active, nil
}

func (s *Service) GetPrisonerDisplayInfo(ctx context.Context, prisonerID id.PrisonerID) (models.DisplayInfo, error) {
	p, err := s.store.FindPrisoner(ctx, prisonerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.DisplayInfo{}, dErrors.New(dErrors.CodeNotFound, "prisoner not found")
		}
		return models.DisplayInfo{}, wrapStoreErr(err, "failed to load prisoner")
	}
	return p.DisplayInfo(), nil
}

func (s *Service) GetLawyer(ctx context.Context, lawyerID id.LawyerID) (*models.Lawyer, error) {
	l, err := s.store.FindLawyer(ctx, lawyerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "lawyer not found")
		}
		return nil, wrapStoreErr(err, "failed to load lawyer")
	}
	if !l.Active {
		return nil, dErrors.New(dErrors.CodeNotFound, "lawyer not found")
	}
	return l, nil
}

func (s *Service) ListLawyers(ctx context.Context, filter models.LawyerFilter) ([]*models.Lawyer, error) {
	lawyers, err := s.store.ListLawyers(ctx, filter)
	if err != nil {
		s.logger.Error("list lawyers failed", zap.Error(err))
		return nil, wrapStoreErr(err, "failed to list lawyers")
	}
	return lawyers, nil
}

func wrapStoreErr(err error, msg string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
