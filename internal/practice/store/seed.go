package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"counsel/internal/practice/models"
	id "counsel/pkg/domain"
)

type Writer interface {
	SavePrecedent(ctx context.Context, p *models.Precedent) error
	SaveMeeting(ctx context.Context, m *models.Meeting) error
	SaveAppearance(ctx context.Context, a *models.Appearance) error
}

// SeedDemo gives lawyerID a precedent, an upcoming meeting with prisonerID
// and a past appearance on caseID.
func SeedDemo(ctx context.Context, w Writer, lawyerID id.LawyerID, prisonerID id.PrisonerID, caseID id.CaseID) error {
	now := time.Now().UTC().Truncate(time.Microsecond)
	precedent := &models.Precedent{
		ID: uuid.New(), LawyerID: lawyerID, Title: "Gideon v. Wainwright", Citation: "372 U.S. 335 (1963)",
		Summary: "Right to appointed counsel in felony cases.", CreatedAt: now,
	}
	meeting := &models.Meeting{
		ID: uuid.New(), LawyerID: lawyerID, PrisonerID: prisonerID, ScheduledAt: now.Add(72 * time.Hour),
		Location: "Visiting room B", CreatedAt: now,
	}
	appearance := &models.Appearance{
		ID: uuid.New(), LawyerID: lawyerID, CaseID: caseID, Court: "County Superior Court",
		AppearedAt: now.Add(-14 * 24 * time.Hour), Outcome: "continued",
	}

	if err := w.SavePrecedent(ctx, precedent); err != nil {
		return err
	}
	if err := w.SaveMeeting(ctx, meeting); err != nil {
		return err
	}
	return w.SaveAppearance(ctx, appearance)
}
