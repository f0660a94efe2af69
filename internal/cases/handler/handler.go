// Package handler exposes a lawyer's assigned cases over HTTP.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"counsel/internal/cases/models"
	id "counsel/pkg/domain"
	"counsel/pkg/platform/httputil"
	"counsel/pkg/platform/middleware/auth"
	"counsel/pkg/requestcontext"
)

type Service interface {
	GetCasesByLawyer(ctx context.Context, lawyerID id.LawyerID) ([]*models.Case, error)
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func New(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/lawyers/{lawyerID}/cases", h.HandleListCases)
}

// HandleListCases handles GET /lawyers/{lawyerID}/cases.
func (h *Handler) HandleListCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := chi.URLParam(r, "lawyerID")
	lawyerID, err := id.ParseLawyerID(raw)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := auth.AuthorizeSubject(ctx, requestcontext.RoleLawyer, lawyerID.String()); err != nil {
		httputil.WriteError(w, err)
		return
	}

	cases, err := h.service.GetCasesByLawyer(ctx, lawyerID)
	if err != nil {
		h.logger.Error("list lawyer cases failed",
			zap.String("request_id", requestcontext.RequestID(ctx)),
			zap.String("lawyer_id", lawyerID.String()),
			zap.Error(err),
		)
		httputil.WriteError(w, err)
		return
	}

	resp := CaseListResponse{Cases: make([]CaseResponse, 0, len(cases))}
	for _, c := range cases {
		resp.Cases = append(resp.Cases, CaseResponse{
			ID:         c.ID.String(),
			Title:      c.Title,
			Status:     string(c.Status),
			PrisonerID: c.PrisonerID.String(),
			UpdatedAt:  c.UpdatedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type CaseResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	PrisonerID string    `json:"prisoner_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CaseListResponse struct {
	Cases []CaseResponse `json:"cases"`
}
