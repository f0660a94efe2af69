package adapters

import (
	"context"

	casemodels "counsel/internal/cases/models"
	"counsel/internal/representation/ports"
	id "counsel/pkg/domain"
)

type caseService interface {
	GetCase(ctx context.Context, caseID id.CaseID) (*casemodels.Case, error)
	SetAssignedLawyer(ctx context.Context, caseID id.CaseID, lawyerID id.LawyerID) error
	AssignUnassignedCases(ctx context.Context, prisonerID id.PrisonerID, lawyerID id.LawyerID) ([]id.CaseID, error)
}

type CaseAdapter struct {
	cases caseService
}

func NewCaseAdapter(cases caseService) ports.CasePort {
	return &CaseAdapter{cases: cases}
}

func (a *CaseAdapter) CaseOwner(ctx context.Context, caseID id.CaseID) (id.PrisonerID, error) {
	c, err := a.cases.GetCase(ctx, caseID)
	if err != nil {
		return id.PrisonerID{}, err
	}
	return c.PrisonerID, nil
}

func (a *CaseAdapter) AssignCase(ctx context.Context, caseID id.CaseID, lawyerID id.LawyerID) error {
	return a.cases.SetAssignedLawyer(ctx, caseID, lawyerID)
}

func (a *CaseAdapter) AssignUnassignedCases(ctx context.Context, prisonerID id.PrisonerID, lawyerID id.LawyerID) ([]id.CaseID, error) {
	return a.cases.AssignUnassignedCases(ctx, prisonerID, lawyerID)
}
