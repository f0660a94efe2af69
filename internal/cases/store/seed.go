package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"counsel/internal/cases/models"
	id "counsel/pkg/domain"
)

type Writer interface {
	Save(ctx context.Context, c *models.Case) error
}

// SeedDemo writes two open, unassigned cases for prisonerID.
func SeedDemo(ctx context.Context, w Writer, prisonerID id.PrisonerID) error {
	now := time.Now().UTC()
	for i, title := range []string{"Appeal of 2019 conviction", "Parole hearing preparation"} {
		c := &models.Case{
			ID:         id.CaseID(uuid.New()),
			Title:      title,
			Status:     models.StatusOpen,
			PrisonerID: prisonerID,
			CreatedAt:  now.Add(time.Duration(i) * time.Second),
			UpdatedAt:  now,
		}
		if err := w.Save(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
