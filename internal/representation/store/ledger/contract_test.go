package ledger

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"counsel/internal/representation/models"
	id "counsel/pkg/domain"
	"counsel/pkg/platform/sentinel"
)

type ledgerStore interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error)
	ListPendingByLawyer(ctx context.Context, lawyerID id.LawyerID) ([]*models.Application, error)
	ListByPrisoner(ctx context.Context, prisonerID id.PrisonerID) ([]*models.Application, error)
	Finalize(ctx context.Context, applicationID id.ApplicationID, target models.Status, decidedAt time.Time) (*models.Application, error)
}

var (
	_ ledgerStore = (*InMemory)(nil)
	_ ledgerStore = (*PostgresStore)(nil)
	_ ledgerStore = (*RedisStore)(nil)
)

// contractSuite runs the same behaviour checks against every backend.
// Embedders call init from SetupTest.
type contractSuite struct {
	suite.Suite
	ctx   context.Context
	store ledgerStore
	base  time.Time
}

func (s *contractSuite) init(store ledgerStore) {
	s.ctx = context.Background()
	s.store = store
	s.base = models.TruncateTime(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
}

func (s *contractSuite) newApp(prisoner id.PrisonerID, lawyer id.LawyerID, at time.Time) *models.Application {
	app, err := models.NewApplication(id.NewApplicationID(), prisoner, lawyer, nil, at)
	s.Require().NoError(err)
	return app
}

func (s *contractSuite) TestCreateAndFind() {
	prisoner, lawyer := id.PrisonerID(uuid.New()), id.LawyerID(uuid.New())
	caseID := id.CaseID(uuid.New())
	app, err := models.NewApplication(id.NewApplicationID(), prisoner, lawyer, &caseID, s.base.Add(123*time.Microsecond))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, app))

	got, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal(app.ID, got.ID)
	s.Equal(prisoner, got.PrisonerID)
	s.Equal(lawyer, got.LawyerID)
	s.Require().NotNil(got.CaseID)
	s.Equal(caseID, *got.CaseID)
	s.Equal(models.StatusPending, got.Status)
	s.True(app.CreatedAt.Equal(got.CreatedAt))
	s.Nil(got.DecidedAt)

	_, err = s.store.FindByID(s.ctx, id.NewApplicationID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *contractSuite) TestDuplicatePendingConflicts() {
	prisoner, lawyer := id.PrisonerID(uuid.New()), id.LawyerID(uuid.New())
	first := s.newApp(prisoner, lawyer, s.base)
	s.Require().NoError(s.store.Create(s.ctx, first))

	err := s.store.Create(s.ctx, s.newApp(prisoner, lawyer, s.base.Add(time.Second)))
	s.ErrorIs(err, sentinel.ErrConflict)

	s.Run("other lawyer is a different pair", func() {
		s.NoError(s.store.Create(s.ctx, s.newApp(prisoner, id.LawyerID(uuid.New()), s.base)))
	})

	s.Run("re-apply after a terminal decision", func() {
		_, err := s.store.Finalize(s.ctx, first.ID, models.StatusRejected, s.base.Add(time.Minute))
		s.Require().NoError(err)
		s.NoError(s.store.Create(s.ctx, s.newApp(prisoner, lawyer, s.base.Add(2*time.Minute))))
	})
}

func (s *contractSuite) TestListPendingOrder() {
	lawyer := id.LawyerID(uuid.New())
	late := s.newApp(id.PrisonerID(uuid.New()), lawyer, s.base.Add(2*time.Second))
	early := s.newApp(id.PrisonerID(uuid.New()), lawyer, s.base)
	tieA := s.newApp(id.PrisonerID(uuid.New()), lawyer, s.base.Add(time.Second))
	tieB := s.newApp(id.PrisonerID(uuid.New()), lawyer, s.base.Add(time.Second))
	decided := s.newApp(id.PrisonerID(uuid.New()), lawyer, s.base.Add(-time.Hour))
	other := s.newApp(id.PrisonerID(uuid.New()), id.LawyerID(uuid.New()), s.base)
	for _, app := range []*models.Application{late, early, tieA, tieB, decided, other} {
		s.Require().NoError(s.store.Create(s.ctx, app))
	}
	_, err := s.store.Finalize(s.ctx, decided.ID, models.StatusAccepted, s.base)
	s.Require().NoError(err)

	got, err := s.store.ListPendingByLawyer(s.ctx, lawyer)
	s.Require().NoError(err)

	first, second := tieA, tieB
	if tieB.ID.String() < tieA.ID.String() {
		first, second = tieB, tieA
	}
	want := []id.ApplicationID{early.ID, first.ID, second.ID, late.ID}
	s.Equal(want, applicationIDs(got))

	empty, err := s.store.ListPendingByLawyer(s.ctx, id.LawyerID(uuid.New()))
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *contractSuite) TestFinalizeExactlyOnce() {
	app := s.newApp(id.PrisonerID(uuid.New()), id.LawyerID(uuid.New()), s.base)
	s.Require().NoError(s.store.Create(s.ctx, app))

	decidedAt := s.base.Add(time.Hour)
	got, err := s.store.Finalize(s.ctx, app.ID, models.StatusAccepted, decidedAt)
	s.Require().NoError(err)
	s.Equal(models.StatusAccepted, got.Status)
	s.Require().NotNil(got.DecidedAt)
	s.True(decidedAt.Equal(*got.DecidedAt))

	_, err = s.store.Finalize(s.ctx, app.ID, models.StatusRejected, decidedAt)
	s.ErrorIs(err, sentinel.ErrInvalidState)

	reloaded, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusAccepted, reloaded.Status)

	_, err = s.store.Finalize(s.ctx, id.NewApplicationID(), models.StatusAccepted, decidedAt)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *contractSuite) TestListByPrisoner() {
	prisoner := id.PrisonerID(uuid.New())
	a1 := s.newApp(prisoner, id.LawyerID(uuid.New()), s.base.Add(time.Second))
	a2 := s.newApp(prisoner, id.LawyerID(uuid.New()), s.base)
	s.Require().NoError(s.store.Create(s.ctx, a1))
	s.Require().NoError(s.store.Create(s.ctx, a2))
	_, err := s.store.Finalize(s.ctx, a1.ID, models.StatusRejected, s.base.Add(time.Minute))
	s.Require().NoError(err)

	got, err := s.store.ListByPrisoner(s.ctx, prisoner)
	s.Require().NoError(err)
	s.Equal([]id.ApplicationID{a2.ID, a1.ID}, applicationIDs(got))
	s.Equal(models.StatusRejected, got[1].Status)
}

func (s *contractSuite) TestConcurrentFinalizeSingleWinner() {
	app := s.newApp(id.PrisonerID(uuid.New()), id.LawyerID(uuid.New()), s.base)
	s.Require().NoError(s.store.Create(s.ctx, app))

	const workers = 16
	var wins, invalid atomic.Int32
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := models.StatusAccepted
			if i%2 == 1 {
				target = models.StatusRejected
			}
			_, err := s.store.Finalize(s.ctx, app.ID, target, s.base.Add(time.Minute))
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, sentinel.ErrInvalidState):
				invalid.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
	s.Equal(int32(workers-1), invalid.Load())
}

func (s *contractSuite) TestConcurrentCreateSingleWinner() {
	prisoner, lawyer := id.PrisonerID(uuid.New()), id.LawyerID(uuid.New())

	const workers = 16
	apps := make([]*models.Application, workers)
	for i := range apps {
		apps[i] = s.newApp(prisoner, lawyer, s.base)
	}

	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	for _, app := range apps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Create(s.ctx, app)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
	s.Equal(int32(workers-1), conflicts.Load())

	pending, err := s.store.ListPendingByLawyer(s.ctx, lawyer)
	s.Require().NoError(err)
	s.Len(pending, 1)
}

func applicationIDs(apps []*models.Application) []id.ApplicationID {
	out := make([]id.ApplicationID, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.ID)
	}
	return out
}
