// Package store persists cases.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"counsel/internal/cases/models"
	id "counsel/pkg/domain"
	"counsel/pkg/platform/sentinel"
)

type InMemory struct {
	mu    sync.RWMutex
	cases map[id.CaseID]*models.Case
}

func NewInMemory() *InMemory {
	return &InMemory{cases: make(map[id.CaseID]*models.Case)}
}

func clone(c *models.Case) *models.Case {
	cp := *c
	if c.AssignedLawyerID != nil {
		lawyerID := *c.AssignedLawyerID
		cp.AssignedLawyerID = &lawyerID
	}
	return &cp
}

func (s *InMemory) Save(_ context.Context, c *models.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases[c.ID] = clone(c)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, caseID id.CaseID) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[caseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(c), nil
}

func (s *InMemory) ListByLawyer(_ context.Context, lawyerID id.LawyerID) ([]*models.Case, error) {
	return s.filter(func(c *models.Case) bool {
		return c.AssignedLawyerID != nil && *c.AssignedLawyerID == lawyerID
	}), nil
}

func (s *InMemory) ListByPrisoner(_ context.Context, prisonerID id.PrisonerID) ([]*models.Case, error) {
	return s.filter(func(c *models.Case) bool { return c.PrisonerID == prisonerID }), nil
}

// AssignLawyer sets the assigned lawyer when the case is unassigned or
// already assigned to the same lawyer, else returns sentinel.ErrConflict.
func (s *InMemory) AssignLawyer(_ context.Context, caseID id.CaseID, lawyerID id.LawyerID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[caseID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !c.CanAssign(lawyerID) {
		return sentinel.ErrConflict
	}
	c.ApplyAssignment(lawyerID, now)
	return nil
}

// AssignUnassigned assigns lawyerID to every unassigned case of the prisoner
// and returns the ids it changed.
func (s *InMemory) AssignUnassigned(_ context.Context, prisonerID id.PrisonerID, lawyerID id.LawyerID, now time.Time) ([]id.CaseID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed []id.CaseID
	for _, c := range s.cases {
		if c.PrisonerID == prisonerID && !c.IsAssigned() {
			c.ApplyAssignment(lawyerID, now)
			changed = append(changed, c.ID)
		}
	}
	sort.Slice(changed, func(i, j int) bool { return changed[i].String() < changed[j].String() })
	return changed, nil
}

func (s *InMemory) filter(keep func(*models.Case) bool) []*models.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Case
	for _, c := range s.cases {
		if keep(c) {
			out = append(out, clone(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
