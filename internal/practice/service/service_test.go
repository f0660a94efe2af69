package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"counsel/internal/practice/models"
	"counsel/internal/practice/store"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/sentinel"
	"counsel/pkg/requestcontext"
)

// stubDirectory knows a fixed set of active people.
type stubDirectory struct {
	lawyers   map[id.LawyerID]bool
	prisoners map[id.PrisonerID]bool
	err       error
}

func (d *stubDirectory) LawyerExists(_ context.Context, lawyerID id.LawyerID) (bool, error) {
	return d.lawyers[lawyerID], d.err
}

func (d *stubDirectory) PrisonerExists(_ context.Context, prisonerID id.PrisonerID) (bool, error) {
	return d.prisoners[prisonerID], d.err
}

type failingStore struct {
	*store.InMemory
	err error
}

func (f failingStore) ListPrecedents(context.Context, id.LawyerID) ([]*models.Precedent, error) {
	return nil, f.err
}

func (f failingStore) SaveMeeting(context.Context, *models.Meeting) error { return f.err }

type ServiceSuite struct {
	suite.Suite
	store     *store.InMemory
	directory *stubDirectory
	service   *Service
	ctx       context.Context
	now       time.Time
	lawyer    id.LawyerID
	prisoner  id.PrisonerID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.lawyer = id.LawyerID(uuid.New())
	s.prisoner = id.PrisonerID(uuid.New())
	s.store = store.NewInMemory()
	s.directory = &stubDirectory{
		lawyers:   map[id.LawyerID]bool{s.lawyer: true},
		prisoners: map[id.PrisonerID]bool{s.prisoner: true},
	}
	s.service = New(s.store, s.directory)
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) TestAddPrecedent() {
	p, err := s.service.AddPrecedent(s.ctx, s.lawyer, "Gideon v. Wainwright", "372 U.S. 335", "")
	s.Require().NoError(err)
	s.Equal(s.now, p.CreatedAt, "uses request time")

	list, err := s.service.ListPrecedents(s.ctx, s.lawyer)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(p.ID, list[0].ID)

	s.Run("unknown lawyer", func() {
		_, err := s.service.AddPrecedent(s.ctx, id.LawyerID(uuid.New()), "t", "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("blank title", func() {
		_, err := s.service.AddPrecedent(s.ctx, s.lawyer, " ", "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestAddMeeting() {
	at := s.now.Add(24 * time.Hour)
	m, err := s.service.AddMeeting(s.ctx, s.lawyer, s.prisoner, at, "Room B", "")
	s.Require().NoError(err)
	s.Equal(at, m.ScheduledAt)

	list, err := s.service.ListMeetings(s.ctx, s.lawyer)
	s.Require().NoError(err)
	s.Len(list, 1)

	s.Run("unknown prisoner", func() {
		_, err := s.service.AddMeeting(s.ctx, s.lawyer, id.PrisonerID(uuid.New()), at, "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown lawyer is checked first", func() {
		_, err := s.service.AddMeeting(s.ctx, id.LawyerID(uuid.New()), id.PrisonerID(uuid.New()), at, "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "lawyer")
	})

	s.Run("meeting in the past", func() {
		_, err := s.service.AddMeeting(s.ctx, s.lawyer, s.prisoner, s.now.Add(-time.Hour), "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestDirectoryFailurePropagates() {
	s.directory.err = dErrors.New(dErrors.CodeUnavailable, "identity down")
	_, err := s.service.AddPrecedent(s.ctx, s.lawyer, "t", "", "")
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *ServiceSuite) TestStoreFailures() {
	svc := New(failingStore{InMemory: s.store, err: sentinel.ErrUnavailable}, s.directory)

	_, err := svc.ListPrecedents(s.ctx, s.lawyer)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))

	_, err = svc.AddMeeting(s.ctx, s.lawyer, s.prisoner, s.now.Add(time.Hour), "", "")
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))

	svc = New(failingStore{InMemory: s.store, err: context.DeadlineExceeded}, s.directory)
	_, err = svc.ListPrecedents(s.ctx, s.lawyer)
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}

func (s *ServiceSuite) TestListAppearances() {
	a := &models.Appearance{ID: uuid.New(), LawyerID: s.lawyer, CaseID: id.CaseID(uuid.New()), Court: "County", AppearedAt: s.now}
	s.Require().NoError(s.store.SaveAppearance(s.ctx, a))

	list, err := s.service.ListAppearances(s.ctx, s.lawyer)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("County", list[0].Court)
}
