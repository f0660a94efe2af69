// Package store persists practice records.
package store

import (
	"context"
	"sort"
	"sync"

	"counsel/internal/practice/models"
	id "counsel/pkg/domain"
)

type InMemory struct {
	mu          sync.RWMutex
	precedents  map[id.LawyerID][]models.Precedent
	meetings    map[id.LawyerID][]models.Meeting
	appearances map[id.LawyerID][]models.Appearance
}

func NewInMemory() *InMemory {
	return &InMemory{
		precedents:  make(map[id.LawyerID][]models.Precedent),
		meetings:    make(map[id.LawyerID][]models.Meeting),
		appearances: make(map[id.LawyerID][]models.Appearance),
	}
}

func (s *InMemory) SavePrecedent(_ context.Context, p *models.Precedent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.precedents[p.LawyerID] = append(s.precedents[p.LawyerID], *p)
	return nil
}

func (s *InMemory) SaveMeeting(_ context.Context, m *models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meetings[m.LawyerID] = append(s.meetings[m.LawyerID], *m)
	return nil
}

func (s *InMemory) SaveAppearance(_ context.Context, a *models.Appearance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appearances[a.LawyerID] = append(s.appearances[a.LawyerID], *a)
	return nil
}

// ListPrecedents returns the lawyer's precedents, newest first.
func (s *InMemory) ListPrecedents(_ context.Context, lawyerID id.LawyerID) ([]*models.Precedent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Precedent, 0, len(s.precedents[lawyerID]))
	for _, p := range s.precedents[lawyerID] {
		out = append(out, &p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// ListMeetings returns the lawyer's meetings in schedule order.
func (s *InMemory) ListMeetings(_ context.Context, lawyerID id.LawyerID) ([]*models.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Meeting, 0, len(s.meetings[lawyerID]))
	for _, m := range s.meetings[lawyerID] {
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// ListAppearances returns the lawyer's court appearances, most recent first.
func (s *InMemory) ListAppearances(_ context.Context, lawyerID id.LawyerID) ([]*models.Appearance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Appearance, 0, len(s.appearances[lawyerID]))
	for _, a := range s.appearances[lawyerID] {
		out = append(out, &a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].AppearedAt.Equal(out[j].AppearedAt) {
			return out[i].AppearedAt.After(out[j].AppearedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
