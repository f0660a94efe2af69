// Package handler exposes a lawyer's practice records over HTTP. Every route
// is scoped to the lawyer named in the path.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"counsel/internal/practice/models"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/httputil"
	"counsel/pkg/platform/middleware/auth"
	"counsel/pkg/requestcontext"
)

type Service interface {
	ListPrecedents(ctx context.Context, lawyerID id.LawyerID) ([]*models.Precedent, error)
	AddPrecedent(ctx context.Context, lawyerID id.LawyerID, title, citation, summary string) (*models.Precedent, error)
	ListMeetings(ctx context.Context, lawyerID id.LawyerID) ([]*models.Meeting, error)
	AddMeeting(ctx context.Context, lawyerID id.LawyerID, prisonerID id.PrisonerID, scheduledAt time.Time, location, notes string) (*models.Meeting, error)
	ListAppearances(ctx context.Context, lawyerID id.LawyerID) ([]*models.Appearance, error)
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func New(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/lawyers/{lawyerID}/precedents", h.HandleListPrecedents)
	r.Post("/lawyers/{lawyerID}/precedents", h.HandleAddPrecedent)
	r.Get("/lawyers/{lawyerID}/meetings", h.HandleListMeetings)
	r.Post("/lawyers/{lawyerID}/meetings", h.HandleAddMeeting)
	r.Get("/lawyers/{lawyerID}/appearances", h.HandleListAppearances)
}

// HandleListPrecedents handles GET /lawyers/{lawyerID}/precedents.
func (h *Handler) HandleListPrecedents(w http.ResponseWriter, r *http.Request) {
	lawyerID, ok := h.lawyerFromPath(w, r)
	if !ok {
		return
	}
	precedents, err := h.service.ListPrecedents(r.Context(), lawyerID)
	if err != nil {
		h.logFailure(r.Context(), "list precedents failed", lawyerID, err)
		httputil.WriteError(w, err)
		return
	}
	resp := PrecedentListResponse{Precedents: make([]PrecedentResponse, 0, len(precedents))}
	for _, p := range precedents {
		resp.Precedents = append(resp.Precedents, toPrecedentResponse(p))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleAddPrecedent handles POST /lawyers/{lawyerID}/precedents.
func (h *Handler) HandleAddPrecedent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lawyerID, ok := h.lawyerFromPath(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddPrecedentRequest](w, r, h.logger, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	p, err := h.service.AddPrecedent(ctx, lawyerID, req.Title, req.Citation, req.Summary)
	if err != nil {
		h.logFailure(ctx, "add precedent failed", lawyerID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toPrecedentResponse(p))
}

// HandleListMeetings handles GET /lawyers/{lawyerID}/meetings.
func (h *Handler) HandleListMeetings(w http.ResponseWriter, r *http.Request) {
	lawyerID, ok := h.lawyerFromPath(w, r)
	if !ok {
		return
	}
	meetings, err := h.service.ListMeetings(r.Context(), lawyerID)
	if err != nil {
		h.logFailure(r.Context(), "list meetings failed", lawyerID, err)
		httputil.WriteError(w, err)
		return
	}
	resp := MeetingListResponse{Meetings: make([]MeetingResponse, 0, len(meetings))}
	for _, m := range meetings {
		resp.Meetings = append(resp.Meetings, toMeetingResponse(m))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleAddMeeting handles POST /lawyers/{lawyerID}/meetings.
func (h *Handler) HandleAddMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lawyerID, ok := h.lawyerFromPath(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddMeetingRequest](w, r, h.logger, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	m, err := h.service.AddMeeting(ctx, lawyerID, req.parsedPrisonerID, req.parsedScheduledAt, req.Location, req.Notes)
	if err != nil {
		h.logFailure(ctx, "add meeting failed", lawyerID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toMeetingResponse(m))
}

// HandleListAppearances handles GET /lawyers/{lawyerID}/appearances.
func (h *Handler) HandleListAppearances(w http.ResponseWriter, r *http.Request) {
	lawyerID, ok := h.lawyerFromPath(w, r)
	if !ok {
		return
	}
	appearances, err := h.service.ListAppearances(r.Context(), lawyerID)
	if err != nil {
		h.logFailure(r.Context(), "list appearances failed", lawyerID, err)
		httputil.WriteError(w, err)
		return
	}
	resp := AppearanceListResponse{Appearances: make([]AppearanceResponse, 0, len(appearances))}
	for _, a := range appearances {
		resp.Appearances = append(resp.Appearances, AppearanceResponse{
			ID:         a.ID.String(),
			CaseID:     a.CaseID.String(),
			Court:      a.Court,
			AppearedAt: a.AppearedAt,
			Outcome:    a.Outcome,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// lawyerFromPath parses the path lawyer and checks the caller may act for
// them. It writes the error response itself.
func (h *Handler) lawyerFromPath(w http.ResponseWriter, r *http.Request) (id.LawyerID, bool) {
	lawyerID, err := id.ParseLawyerID(chi.URLParam(r, "lawyerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.LawyerID{}, false
	}
	if err := auth.AuthorizeSubject(r.Context(), requestcontext.RoleLawyer, lawyerID.String()); err != nil {
		httputil.WriteError(w, err)
		return id.LawyerID{}, false
	}
	return lawyerID, true
}

func (h *Handler) logFailure(ctx context.Context, msg string, lawyerID id.LawyerID, err error) {
	fields := []zap.Field{
		zap.String("request_id", requestcontext.RequestID(ctx)),
		zap.String("lawyer_id", lawyerID.String()),
		zap.Error(err),
	}
	if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.Error(msg, fields...)
		return
	}
	h.logger.Debug(msg, fields...)
}
