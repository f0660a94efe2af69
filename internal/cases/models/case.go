package models

import (
	"time"

	id "counsel/pkg/domain"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Case is a prisoner's legal matter. A case has at most one assigned lawyer,
// set only when that lawyer accepts an application.
type Case struct {
	ID               id.CaseID
	Title            string
	Status           Status
	PrisonerID       id.PrisonerID
	AssignedLawyerID *id.LawyerID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (c *Case) IsAssigned() bool {
	return c.AssignedLawyerID != nil
}

// CanAssign reports whether lawyerID may be set as the assigned lawyer.
// Re-assigning the same lawyer is a no-op, not a conflict.
func (c *Case) CanAssign(lawyerID id.LawyerID) bool {
	return c.AssignedLawyerID == nil || *c.AssignedLawyerID == lawyerID
}

func (c *Case) ApplyAssignment(lawyerID id.LawyerID, now time.Time) {
	assigned := lawyerID
	c.AssignedLawyerID = &assigned
	c.UpdatedAt = now
}
