package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"counsel/internal/identity/models"
	id "counsel/pkg/domain"
	"counsel/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemorySuite) lawyer(name string, proBono, active bool) *models.Lawyer {
	l := &models.Lawyer{ID: id.LawyerID(uuid.New()), Name: name, ProBono: proBono, Active: active, CreatedAt: time.Now()}
	s.Require().NoError(s.store.SaveLawyer(s.ctx, l))
	return l
}

func (s *InMemorySuite) TestFind() {
	s.Run("prisoner round trip", func() {
		p := &models.Prisoner{ID: id.PrisonerID(uuid.New()), Name: "Ada", Active: true}
		s.Require().NoError(s.store.SavePrisoner(s.ctx, p))

		found, err := s.store.FindPrisoner(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("Ada", found.Name)
	})

	s.Run("returned records are copies", func() {
		l := s.lawyer("Jane", false, true)
		found, err := s.store.FindLawyer(s.ctx, l.ID)
		s.Require().NoError(err)
		found.Name = "mutated"

		again, err := s.store.FindLawyer(s.ctx, l.ID)
		s.Require().NoError(err)
		s.Equal("Jane", again.Name)
	})

	s.Run("unknown ids", func() {
		_, err := s.store.FindPrisoner(s.ctx, id.PrisonerID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindLawyer(s.ctx, id.LawyerID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemorySuite) TestListLawyers() {
	b := s.lawyer("Bea", true, true)
	a := s.lawyer("Abe", false, true)
	s.lawyer("Cal", true, false)

	all, err := s.store.ListLawyers(s.ctx, models.LawyerFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(a.ID, all[0].ID)
	s.Equal(b.ID, all[1].ID)

	proBono, err := s.store.ListLawyers(s.ctx, models.LawyerFilter{ProBonoOnly: true})
	s.Require().NoError(err)
	s.Require().Len(proBono, 1)
	s.Equal(b.ID, proBono[0].ID)
}

func (s *InMemorySuite) TestSeedDemo() {
	s.Require().NoError(SeedDemo(s.ctx, s.store))

	_, err := s.store.FindPrisoner(s.ctx, DemoPrisonerID)
	s.NoError(err)
	lawyers, err := s.store.ListLawyers(s.ctx, models.LawyerFilter{})
	s.NoError(err)
	s.Len(lawyers, 2)
}
