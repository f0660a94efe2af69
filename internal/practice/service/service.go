// Package service manages a lawyer's practice records.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"counsel/internal/practice/models"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/sentinel"
	"counsel/pkg/requestcontext"
)

type Store interface {
	SavePrecedent(ctx context.Context, p *models.Precedent) error
	SaveMeeting(ctx context.Context, m *models.Meeting) error
	ListPrecedents(ctx context.Context, lawyerID id.LawyerID) ([]*models.Precedent, error)
	ListMeetings(ctx context.Context, lawyerID id.LawyerID) ([]*models.Meeting, error)
	ListAppearances(ctx context.Context, lawyerID id.LawyerID) ([]*models.Appearance, error)
}

// Directory confirms the people a record refers to.
type Directory interface {
	LawyerExists(ctx context.Context, lawyerID id.LawyerID) (bool, error)
	PrisonerExists(ctx context.Context, prisonerID id.PrisonerID) (bool, error)
}

type Service struct {
	store     Store
	directory Directory
	logger    *zap.Logger
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, directory Directory, opts ...Option) *Service {
	s := &Service{store: store, directory: directory, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListPrecedents(ctx context.Context, lawyerID id.LawyerID) ([]*models.Precedent, error) {
	out, err := s.store.ListPrecedents(ctx, lawyerID)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to list precedents")
	}
	return out, nil
}

// AddPrecedent files a precedent under an active lawyer.
func (s *Service) AddPrecedent(ctx context.Context, lawyerID id.LawyerID, title, citation, summary string) (*models.Precedent, error) {
	if err := s.requireLawyer(ctx, lawyerID); err != nil {
		return nil, err
	}
	p, err := models.NewPrecedent(lawyerID, title, citation, summary, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.SavePrecedent(ctx, p); err != nil {
		return nil, wrapStoreErr(err, "failed to save precedent")
	}
	s.logger.Info("precedent added",
		zap.String("lawyer_id", lawyerID.String()),
		zap.String("precedent_id", p.ID.String()),
	)
	return p, nil
}

func (s *Service) ListMeetings(ctx context.Context, lawyerID id.LawyerID) ([]*models.Meeting, error) {
	out, err := s.store.ListMeetings(ctx, lawyerID)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to list meetings")
	}
	return out, nil
}

// AddMeeting schedules a meeting between an active lawyer and an active
// prisoner.
func (s *Service) AddMeeting(ctx context.Context, lawyerID id.LawyerID, prisonerID id.PrisonerID, scheduledAt time.Time, location, notes string) (*models.Meeting, error) {
	if err := s.requireLawyer(ctx, lawyerID); err != nil {
		return nil, err
	}
	ok, err := s.directory.PrisonerExists(ctx, prisonerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "prisoner not found")
	}

	m, err := models.NewMeeting(lawyerID, prisonerID, scheduledAt, location, notes, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveMeeting(ctx, m); err != nil {
		return nil, wrapStoreErr(err, "failed to save meeting")
	}
	s.logger.Info("meeting scheduled",
		zap.String("lawyer_id", lawyerID.String()),
		zap.String("prisoner_id", prisonerID.String()),
		zap.Time("scheduled_at", m.ScheduledAt),
	)
	return m, nil
}

func (s *Service) ListAppearances(ctx context.Context, lawyerID id.LawyerID) ([]*models.Appearance, error) {
	out, err := s.store.ListAppearances(ctx, lawyerID)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to list court appearances")
	}
	return out, nil
}

func (s *Service) requireLawyer(ctx context.Context, lawyerID id.LawyerID) error {
	ok, err := s.directory.LawyerExists(ctx, lawyerID)
	if err != nil {
		return err
	}
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "lawyer not found")
	}
	return nil
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
