// Package ledger persists applications. Every store enforces the
// one-pending-per-pair guard and the pending → terminal compare-and-swap in a
// single atomic step.
package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"counsel/internal/representation/models"
	id "counsel/pkg/domain"
	"counsel/pkg/platform/sentinel"
)

type pair struct {
	prisoner id.PrisonerID
	lawyer   id.LawyerID
}

// InMemory is for development and tests; state lives in one process.
type InMemory struct {
	mu      sync.RWMutex
	apps    map[id.ApplicationID]*models.Application
	pending map[pair]id.ApplicationID
}

func NewInMemory() *InMemory {
	return &InMemory{
		apps:    make(map[id.ApplicationID]*models.Application),
		pending: make(map[pair]id.ApplicationID),
	}
}

func clone(a *models.Application) *models.Application {
	cp := *a
	if a.CaseID != nil {
		caseID := *a.CaseID
		cp.CaseID = &caseID
	}
	if a.DecidedAt != nil {
		decided := *a.DecidedAt
		cp.DecidedAt = &decided
	}
	return &cp
}

// Create inserts a pending application, or returns sentinel.ErrConflict when
// the pair already has one.
func (s *InMemory) Create(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pair{app.PrisonerID, app.LawyerID}
	if _, exists := s.pending[key]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.apps[app.ID]; exists {
		return sentinel.ErrConflict
	}
	s.apps[app.ID] = clone(app)
	s.pending[key] = app.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, applicationID id.ApplicationID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[applicationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(app), nil
}

func (s *InMemory) ListPendingByLawyer(_ context.Context, lawyerID id.LawyerID) ([]*models.Application, error) {
	return s.filter(func(a *models.Application) bool {
		return a.LawyerID == lawyerID && a.IsPending()
	}), nil
}

func (s *InMemory) ListByPrisoner(_ context.Context, prisonerID id.PrisonerID) ([]*models.Application, error) {
	return s.filter(func(a *models.Application) bool { return a.PrisonerID == prisonerID }), nil
}

// Finalize moves a pending application to target. A missing application is
// sentinel.ErrNotFound and a terminal one is sentinel.ErrInvalidState.
func (s *InMemory) Finalize(_ context.Context, applicationID id.ApplicationID, target models.Status, decidedAt time.Time) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[applicationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if !app.IsPending() {
		return nil, sentinel.ErrInvalidState
	}
	app.ApplyFinalize(target, decidedAt)
	delete(s.pending, pair{app.PrisonerID, app.LawyerID})
	return clone(app), nil
}

func (s *InMemory) filter(keep func(*models.Application) bool) []*models.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Application
	for _, a := range s.apps {
		if keep(a) {
			out = append(out, clone(a))
		}
	}
	SortByCreated(out)
	return out
}

// SortByCreated orders by created time, then id.
func SortByCreated(apps []*models.Application) {
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].CreatedAt.Before(apps[j].CreatedAt)
		}
		return apps[i].ID.String() < apps[j].ID.String()
	})
}
