package service

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks LedgerStore

import (
	"context"
	"time"

	"counsel/internal/representation/models"
	id "counsel/pkg/domain"
)

// LedgerStore persists applications. Implementations return sentinel errors:
// ErrConflict from Create when the pair already has a pending application,
// ErrNotFound for unknown ids and ErrInvalidState from Finalize when the
// application is already terminal. Create and Finalize are each one atomic
// storage operation.
type LedgerStore interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error)
	ListPendingByLawyer(ctx context.Context, lawyerID id.LawyerID) ([]*models.Application, error)
	ListByPrisoner(ctx context.Context, prisonerID id.PrisonerID) ([]*models.Application, error)
	Finalize(ctx context.Context, applicationID id.ApplicationID, target models.Status, decidedAt time.Time) (*models.Application, error)
}
