// Package models holds a lawyer's practice records: the precedents they
// cite, their client meetings and their court appearances.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
)

const (
	maxTitleLength = 300
	maxTextLength  = 4000
)

// Precedent is a prior ruling a lawyer keeps on file.
type Precedent struct {
	ID        uuid.UUID
	LawyerID  id.LawyerID
	Title     string
	Citation  string
	Summary   string
	CreatedAt time.Time
}

// Meeting is a scheduled consultation between a lawyer and a prisoner client.
type Meeting struct {
	ID          uuid.UUID
	LawyerID    id.LawyerID
	PrisonerID  id.PrisonerID
	ScheduledAt time.Time
	Location    string
	Notes       string
	CreatedAt   time.Time
}

// Appearance is a court date a lawyer attended or will attend for a case.
type Appearance struct {
	ID         uuid.UUID
	LawyerID   id.LawyerID
	CaseID     id.CaseID
	Court      string
	AppearedAt time.Time
	Outcome    string
}

func NewPrecedent(lawyerID id.LawyerID, title, citation, summary string, now time.Time) (*Precedent, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if len(title) > maxTitleLength {
		return nil, dErrors.New(dErrors.CodeValidation, "title must be 300 characters or less")
	}
	if len(summary) > maxTextLength {
		return nil, dErrors.New(dErrors.CodeValidation, "summary must be 4000 characters or less")
	}
	return &Precedent{
		ID:        uuid.New(),
		LawyerID:  lawyerID,
		Title:     title,
		Citation:  strings.TrimSpace(citation),
		Summary:   strings.TrimSpace(summary),
		CreatedAt: now.UTC().Truncate(time.Microsecond),
	}, nil
}

// NewMeeting rejects meetings scheduled before now.
func NewMeeting(lawyerID id.LawyerID, prisonerID id.PrisonerID, scheduledAt time.Time, location, notes string, now time.Time) (*Meeting, error) {
	if scheduledAt.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "scheduled_at is required")
	}
	if scheduledAt.Before(now) {
		return nil, dErrors.New(dErrors.CodeValidation, "scheduled_at must not be in the past")
	}
	if len(notes) > maxTextLength {
		return nil, dErrors.New(dErrors.CodeValidation, "notes must be 4000 characters or less")
	}
	return &Meeting{
		ID:          uuid.New(),
		LawyerID:    lawyerID,
		PrisonerID:  prisonerID,
		ScheduledAt: scheduledAt.UTC().Truncate(time.Microsecond),
		Location:    strings.TrimSpace(location),
		Notes:       strings.TrimSpace(notes),
		CreatedAt:   now.UTC().Truncate(time.Microsecond),
	}, nil
}
