// Package models holds the application ledger's entities and the state
// machine that governs them.
package models

import (
	"time"

	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

func (s Status) IsValid() bool {
	return s == StatusPending || s.IsTerminal()
}

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// ParseDecision accepts exactly "accept" or "reject".
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionAccept:
		return DecisionAccept, nil
	case DecisionReject:
		return DecisionReject, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "decision must be accept or reject")
	}
}

// TargetStatus is the terminal status a decision moves an application to.
func (d Decision) TargetStatus() Status {
	if d == DecisionAccept {
		return StatusAccepted
	}
	return StatusRejected
}

// Application is a prisoner's request that a lawyer represent them.
// PrisonerID, LawyerID, CaseID and CreatedAt never change after creation.
type Application struct {
	ID         id.ApplicationID
	PrisonerID id.PrisonerID
	LawyerID   id.LawyerID
	CaseID     *id.CaseID
	Status     Status
	CreatedAt  time.Time
	DecidedAt  *time.Time
}

// NewApplication builds a pending application. now is truncated to
// microseconds so every store round-trips it exactly.
func NewApplication(applicationID id.ApplicationID, prisonerID id.PrisonerID, lawyerID id.LawyerID, caseID *id.CaseID, now time.Time) (*Application, error) {
	if applicationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "application id required")
	}
	if prisonerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "prisoner id required")
	}
	if lawyerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "lawyer id required")
	}
	if caseID != nil && caseID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "case id must not be nil")
	}
	return &Application{
		ID:         applicationID,
		PrisonerID: prisonerID,
		LawyerID:   lawyerID,
		CaseID:     caseID,
		Status:     StatusPending,
		CreatedAt:  TruncateTime(now),
	}, nil
}

func (a *Application) IsPending() bool {
	return a.Status == StatusPending
}

// CanFinalize checks a pending → terminal transition.
func (a *Application) CanFinalize(target Status) error {
	if !target.IsTerminal() {
		return dErrors.New(dErrors.CodeBadRequest, "target status must be accepted or rejected")
	}
	if !a.IsPending() {
		return dErrors.New(dErrors.CodeInvalidTransition, "application already "+string(a.Status))
	}
	return nil
}

// ApplyFinalize moves the application to target. Callers check CanFinalize
// first; stores do the equivalent check atomically.
func (a *Application) ApplyFinalize(target Status, now time.Time) {
	decided := TruncateTime(now)
	a.Status = target
	a.DecidedAt = &decided
}

// TruncateTime normalises timestamps to UTC microseconds, the precision
// Postgres timestamptz keeps.
func TruncateTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
