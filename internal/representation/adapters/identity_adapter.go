// Package adapters connects the representation ports to the identity and
// cases services running in the same process.
package adapters

import (
	"context"

	identitymodels "counsel/internal/identity/models"
	"counsel/internal/representation/ports"
	id "counsel/pkg/domain"
)

type identityService interface {
	PrisonerExists(ctx context.Context, prisonerID id.PrisonerID) (bool, error)
	LawyerExists(ctx context.Context, lawyerID id.LawyerID) (bool, error)
	GetPrisonerDisplayInfo(ctx context.Context, prisonerID id.PrisonerID) (identitymodels.DisplayInfo, error)
}

type IdentityAdapter struct {
	identity identityService
}

func NewIdentityAdapter(identity identityService) ports.IdentityPort {
	return &IdentityAdapter{identity: identity}
}

func (a *IdentityAdapter) PrisonerExists(ctx context.Context, prisonerID id.PrisonerID) (bool, error) {
	return a.identity.PrisonerExists(ctx, prisonerID)
}

func (a *IdentityAdapter) LawyerExists(ctx context.Context, lawyerID id.LawyerID) (bool, error) {
	return a.identity.LawyerExists(ctx, lawyerID)
}

func (a *IdentityAdapter) PrisonerDisplayInfo(ctx context.Context, prisonerID id.PrisonerID) (ports.DisplayInfo, error) {
	info, err := a.identity.GetPrisonerDisplayInfo(ctx, prisonerID)
	if err != nil {
		return ports.DisplayInfo{}, err
	}
	return ports.DisplayInfo{Name: info.Name, Email: info.Email}, nil
}
