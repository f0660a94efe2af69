// Package handler exposes the lawyer directory over HTTP.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"counsel/internal/identity/models"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/httputil"
	"counsel/pkg/requestcontext"
)

type Service interface {
	GetLawyer(ctx context.Context, lawyerID id.LawyerID) (*models.Lawyer, error)
	ListLawyers(ctx context.Context, filter models.LawyerFilter) ([]*models.Lawyer, error)
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func New(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/lawyers", h.HandleListLawyers)
	r.Get("/lawyers/{lawyerID}", h.HandleGetLawyer)
}

// HandleListLawyers handles GET /lawyers[?pro_bono=true].
func (h *Handler) HandleListLawyers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var filter models.LawyerFilter
	if raw := r.URL.Query().Get("pro_bono"); raw != "" {
		proBono, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "pro_bono must be a boolean"))
			return
		}
		filter.ProBonoOnly = proBono
	}

	lawyers, err := h.service.ListLawyers(ctx, filter)
	if err != nil {
		h.logger.Error("list lawyers failed",
			zap.String("request_id", requestcontext.RequestID(ctx)),
			zap.Error(err),
		)
		httputil.WriteError(w, err)
		return
	}

	resp := LawyerListResponse{Lawyers: make([]LawyerResponse, 0, len(lawyers))}
	for _, l := range lawyers {
		resp.Lawyers = append(resp.Lawyers, toLawyerResponse(l))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGetLawyer handles GET /lawyers/{lawyerID}.
func (h *Handler) HandleGetLawyer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lawyerID, err := id.ParseLawyerID(chi.URLParam(r, "lawyerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	lawyer, err := h.service.GetLawyer(ctx, lawyerID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.Error("get lawyer failed",
				zap.String("request_id", requestcontext.RequestID(ctx)),
				zap.String("lawyer_id", lawyerID.String()),
				zap.Error(err),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLawyerResponse(lawyer))
}
