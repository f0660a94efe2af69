package models

import (
	"strings"
	"time"

	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
)

// Prisoner is an incarcerated person seeking representation.
type Prisoner struct {
	ID        id.PrisonerID
	Name      string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
}

// Lawyer is a legal professional who receives applications.
type Lawyer struct {
	ID              id.LawyerID
	Name            string
	Email           string
	Phone           string
	Specialization  string
	Location        string
	ExperienceYears int
	ProBono         bool
	Active          bool
	CreatedAt       time.Time
}

// DisplayInfo is the subset of a person's record shown to the other party.
type DisplayInfo struct {
	Name  string
	Email string
	Phone string
}

func (p *Prisoner) DisplayInfo() DisplayInfo {
	return DisplayInfo{Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func (l *Lawyer) DisplayInfo() DisplayInfo {
	return DisplayInfo{Name: l.Name, Email: l.Email, Phone: l.Phone}
}

// LawyerFilter narrows the lawyer directory.
type LawyerFilter struct {
	ProBonoOnly bool
}

const maxNameLength = 200

// NewPrisoner enforces the invariants shared by every stored prisoner.
func NewPrisoner(prisonerID id.PrisonerID, name, email, phone string, now time.Time) (*Prisoner, error) {
	name = strings.TrimSpace(name)
	if prisonerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "prisoner id is required")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Prisoner{
		ID:        prisonerID,
		Name:      name,
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Active:    true,
		CreatedAt: now,
	}, nil
}

func NewLawyer(lawyerID id.LawyerID, name, email, phone string, now time.Time) (*Lawyer, error) {
	name = strings.TrimSpace(name)
	if lawyerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "lawyer id is required")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Lawyer{
		ID:        lawyerID,
		Name:      name,
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Active:    true,
		CreatedAt: now,
	}, nil
}

func validateName(name string) error {
	if name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "name cannot be empty")
	}
	if len(name) > maxNameLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "name must be 200 characters or less")
	}
	return nil
}
