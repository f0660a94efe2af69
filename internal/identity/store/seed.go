package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"counsel/internal/identity/models"
	id "counsel/pkg/domain"
)

// Writer is the write side shared by both identity stores.
type Writer interface {
	SavePrisoner(ctx context.Context, p *models.Prisoner) error
	SaveLawyer(ctx context.Context, l *models.Lawyer) error
}

// Fixed demo ids so seeded data can be referenced from docs and tokens.
var (
	DemoPrisonerID = id.PrisonerID(uuid.MustParse("0b6f1f8e-6a1c-4c57-9d0e-5d1a9e0f2a01"))
	DemoLawyerID   = id.LawyerID(uuid.MustParse("7c3e2a44-1d8b-4f0a-b5c2-9a6e4d3f1b02"))
	DemoLawyer2ID  = id.LawyerID(uuid.MustParse("7c3e2a44-1d8b-4f0a-b5c2-9a6e4d3f1b03"))
)

// SeedDemo writes one prisoner and two lawyers used by local development.
func SeedDemo(ctx context.Context, w Writer) error {
	now := time.Now().UTC()
	prisoner := &models.Prisoner{ID: DemoPrisonerID, Name: "Marcus Hale", Email: "m.hale@example.org", Active: true, CreatedAt: now}
	lawyers := []*models.Lawyer{
		{ID: DemoLawyerID, Name: "Priya Natarajan", Email: "priya@example.org", Phone: "555-0101",
			Specialization: "criminal appeals", Location: "Springfield", ExperienceYears: 12, ProBono: true, Active: true, CreatedAt: now},
		{ID: DemoLawyer2ID, Name: "Owen Castillo", Email: "owen@example.org", Phone: "555-0102",
			Specialization: "sentencing", Location: "Shelbyville", ExperienceYears: 4, Active: true, CreatedAt: now},
	}

	if err := w.SavePrisoner(ctx, prisoner); err != nil {
		return err
	}
	for _, l := range lawyers {
		if err := w.SaveLawyer(ctx, l); err != nil {
			return err
		}
	}
	return nil
}
