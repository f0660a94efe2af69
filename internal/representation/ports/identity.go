// Package ports declares what the representation module needs from the rest
// of the system. Adapters implement them in-process; tests use the mocks.
package ports

import (
	"context"

	id "counsel/pkg/domain"
)

// IdentityPort answers existence and display questions about people.
type IdentityPort interface {
	// PrisonerExists is false for unknown and inactive prisoners.
	PrisonerExists(ctx context.Context, prisonerID id.PrisonerID) (bool, error)
	LawyerExists(ctx context.Context, lawyerID id.LawyerID) (bool, error)
	PrisonerDisplayInfo(ctx context.Context, prisonerID id.PrisonerID) (DisplayInfo, error)
}

type DisplayInfo struct {
	Name  string
	Email string
}
