package handler

import (
	"time"

	"counsel/internal/representation/models"
	id "counsel/pkg/domain"
)

type ApplicationResponse struct {
	ID         string     `json:"id"`
	PrisonerID string     `json:"prisoner_id"`
	LawyerID   string     `json:"lawyer_id"`
	CaseID     string     `json:"case_id,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

type NotificationResponse struct {
	ApplicationID string    `json:"application_id"`
	PrisonerID    string    `json:"prisoner_id"`
	PrisonerName  string    `json:"prisoner_name"`
	PrisonerEmail string    `json:"prisoner_email,omitempty"`
	CaseID        string    `json:"case_id,omitempty"`
	AppliedAt     time.Time `json:"applied_at"`
	Degraded      bool      `json:"degraded,omitempty"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

type DecisionResponse struct {
	Application ApplicationResponse `json:"application"`
	CaseUpdated bool                `json:"case_updated"`
	LinkedCases []string            `json:"linked_cases,omitempty"`
	Warning     string              `json:"warning,omitempty"`
}

func toApplicationResponse(a *models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:         a.ID.String(),
		PrisonerID: a.PrisonerID.String(),
		LawyerID:   a.LawyerID.String(),
		CaseID:     caseString(a.CaseID),
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		DecidedAt:  a.DecidedAt,
	}
}

func toNotificationResponse(n models.Notification) NotificationResponse {
	return NotificationResponse{
		ApplicationID: n.ApplicationID.String(),
		PrisonerID:    n.PrisonerID.String(),
		PrisonerName:  n.PrisonerName,
		PrisonerEmail: n.PrisonerEmail,
		CaseID:        caseString(n.CaseID),
		AppliedAt:     n.AppliedAt,
		Degraded:      n.Degraded,
	}
}

func toDecisionResponse(r *models.DecisionResult) DecisionResponse {
	resp := DecisionResponse{
		Application: toApplicationResponse(r.Application),
		CaseUpdated: r.CaseUpdated,
		Warning:     r.Warning,
	}
	for _, c := range r.LinkedCases {
		resp.LinkedCases = append(resp.LinkedCases, c.String())
	}
	return resp
}

func caseString(c *id.CaseID) string {
	if c == nil {
		return ""
	}
	return c.String()
}
