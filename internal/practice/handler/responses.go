package handler

import (
	"time"

	"counsel/internal/practice/models"
)

type PrecedentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Citation  string    `json:"citation,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PrecedentListResponse struct {
	Precedents []PrecedentResponse `json:"precedents"`
}

type MeetingResponse struct {
	ID          string    `json:"id"`
	PrisonerID  string    `json:"prisoner_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Location    string    `json:"location,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}

type AppearanceResponse struct {
	ID         string    `json:"id"`
	CaseID     string    `json:"case_id"`
	Court      string    `json:"court"`
	AppearedAt time.Time `json:"appeared_at"`
	Outcome    string    `json:"outcome,omitempty"`
}

type AppearanceListResponse struct {
	Appearances []AppearanceResponse `json:"appearances"`
}

func toPrecedentResponse(p *models.Precedent) PrecedentResponse {
	return PrecedentResponse{ID: p.ID.String(), Title: p.Title, Citation: p.Citation, Summary: p.Summary, CreatedAt: p.CreatedAt}
}

func toMeetingResponse(m *models.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:          m.ID.String(),
		PrisonerID:  m.PrisonerID.String(),
		ScheduledAt: m.ScheduledAt,
		Location:    m.Location,
		Notes:       m.Notes,
	}
}
