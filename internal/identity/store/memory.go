// Package store persists prisoners and lawyers.
package store

import (
	"context"
	"sort"
	"sync"

	"counsel/internal/identity/models"
	id "counsel/pkg/domain"
	"counsel/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded identity store for development and tests.
type InMemory struct {
	mu        sync.RWMutex
	prisoners map[id.PrisonerID]*models.Prisoner
	lawyers   map[id.LawyerID]*models.Lawyer
}

func NewInMemory() *InMemory {
	return &InMemory{
		prisoners: make(map[id.PrisonerID]*models.Prisoner),
		lawyers:   make(map[id.LawyerID]*models.Lawyer),
	}
}

func (s *InMemory) SavePrisoner(_ context.Context, p *models.Prisoner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.prisoners[p.ID] = &cp
	return nil
}

func (s *InMemory) SaveLawyer(_ context.Context, l *models.Lawyer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *l
	s.lawyers[l.ID] = &cp
	return nil
}

func (s *InMemory) FindPrisoner(_ context.Context, prisonerID id.PrisonerID) (*models.Prisoner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prisoners[prisonerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemory) FindLawyer(_ context.Context, lawyerID id.LawyerID) (*models.Lawyer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lawyers[lawyerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

// ListLawyers returns active lawyers ordered by name, then id.
func (s *InMemory) ListLawyers(_ context.Context, filter models.LawyerFilter) ([]*models.Lawyer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Lawyer, 0, len(s.lawyers))
	for _, l := range s.lawyers {
		if !l.Active || (filter.ProBonoOnly && !l.ProBono) {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
