package ports

import (
	"context"

	id "counsel/pkg/domain"
)

// CasePort reads case ownership and performs the assignment side effect of
// an accepted application.
type CasePort interface {
	// CaseOwner returns the prisoner that owns caseID, or a not_found error.
	CaseOwner(ctx context.Context, caseID id.CaseID) (id.PrisonerID, error)
	AssignCase(ctx context.Context, caseID id.CaseID, lawyerID id.LawyerID) error
	AssignUnassignedCases(ctx context.Context, prisonerID id.PrisonerID, lawyerID id.LawyerID) ([]id.CaseID, error)
}
