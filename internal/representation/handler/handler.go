// Package handler exposes applications, notifications and decisions over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"counsel/internal/representation/models"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/httputil"
	"counsel/pkg/platform/middleware/auth"
	"counsel/pkg/requestcontext"
)

type LedgerService interface {
	Submit(ctx context.Context, prisonerID id.PrisonerID, lawyerID id.LawyerID, caseID *id.CaseID) (*models.Application, error)
	Get(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error)
	ListByPrisoner(ctx context.Context, prisonerID id.PrisonerID) ([]*models.Application, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, lawyerID id.LawyerID) ([]models.Notification, error)
}

type DecisionService interface {
	Decide(ctx context.Context, lawyerID id.LawyerID, applicationID id.ApplicationID, decision string) (*models.DecisionResult, error)
}

type Handler struct {
	ledger    LedgerService
	projector NotificationService
	processor DecisionService
	logger    *zap.Logger
}

func New(ledger LedgerService, projector NotificationService, processor DecisionService, logger *zap.Logger) *Handler {
	return &Handler{ledger: ledger, projector: projector, processor: processor, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/lawyers/{lawyerID}/applications", h.HandleSubmit)
	r.Get("/lawyers/{lawyerID}/notifications", h.HandleNotifications)
	r.Post("/lawyers/{lawyerID}/decisions", h.HandleDecide)
	r.Get("/applications/{applicationID}", h.HandleGetApplication)
	r.Get("/prisoners/{prisonerID}/applications", h.HandleListByPrisoner)
}

// HandleSubmit handles POST /lawyers/{lawyerID}/applications.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	lawyerID, err := id.ParseLawyerID(chi.URLParam(r, "lawyerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}
	if err := auth.AuthorizeSubject(ctx, requestcontext.RolePrisoner, req.parsedPrisonerID.String()); err != nil {
		httputil.WriteError(w, err)
		return
	}

	app, err := h.ledger.Submit(ctx, req.parsedPrisonerID, lawyerID, req.parsedCaseID)
	if err != nil {
		h.logFailure(ctx, "submit application failed", err, zap.String("lawyer_id", lawyerID.String()))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toApplicationResponse(app))
}

// HandleNotifications handles GET /lawyers/{lawyerID}/notifications.
func (h *Handler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lawyerID, err := id.ParseLawyerID(chi.URLParam(r, "lawyerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := auth.AuthorizeSubject(ctx, requestcontext.RoleLawyer, lawyerID.String()); err != nil {
		httputil.WriteError(w, err)
		return
	}

	items, err := h.projector.GetNotifications(ctx, lawyerID)
	if err != nil {
		h.logFailure(ctx, "get notifications failed", err, zap.String("lawyer_id", lawyerID.String()))
		httputil.WriteError(w, err)
		return
	}
	resp := NotificationListResponse{Notifications: make([]NotificationResponse, 0, len(items))}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, toNotificationResponse(n))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleDecide handles POST /lawyers/{lawyerID}/decisions.
func (h *Handler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	lawyerID, err := id.ParseLawyerID(chi.URLParam(r, "lawyerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := auth.AuthorizeSubject(ctx, requestcontext.RoleLawyer, lawyerID.String()); err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[DecisionRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	result, err := h.processor.Decide(ctx, lawyerID, req.parsedApplicationID, req.Decision)
	if err != nil {
		h.logFailure(ctx, "decision failed", err,
			zap.String("lawyer_id", lawyerID.String()),
			zap.String("application_id", req.parsedApplicationID.String()),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDecisionResponse(result))
}

// HandleGetApplication handles GET /applications/{applicationID}. Only the
// two parties of the application may read it.
func (h *Handler) HandleGetApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	applicationID, err := id.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	app, err := h.ledger.Get(ctx, applicationID)
	if err != nil {
		h.logFailure(ctx, "get application failed", err, zap.String("application_id", applicationID.String()))
		httputil.WriteError(w, err)
		return
	}
	if err := authorizeParty(ctx, app); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

// HandleListByPrisoner handles GET /prisoners/{prisonerID}/applications.
func (h *Handler) HandleListByPrisoner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	prisonerID, err := id.ParsePrisonerID(chi.URLParam(r, "prisonerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := auth.AuthorizeSubject(ctx, requestcontext.RolePrisoner, prisonerID.String()); err != nil {
		httputil.WriteError(w, err)
		return
	}

	apps, err := h.ledger.ListByPrisoner(ctx, prisonerID)
	if err != nil {
		h.logFailure(ctx, "list prisoner applications failed", err, zap.String("prisoner_id", prisonerID.String()))
		httputil.WriteError(w, err)
		return
	}
	resp := ApplicationListResponse{Applications: make([]ApplicationResponse, 0, len(apps))}
	for _, a := range apps {
		resp.Applications = append(resp.Applications, toApplicationResponse(a))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func authorizeParty(ctx context.Context, app *models.Application) error {
	if auth.AuthorizeSubject(ctx, requestcontext.RolePrisoner, app.PrisonerID.String()) == nil ||
		auth.AuthorizeSubject(ctx, requestcontext.RoleLawyer, app.LawyerID.String()) == nil {
		return nil
	}
	return dErrors.New(dErrors.CodeForbidden, "caller is not a party to this application")
}

// logFailure logs server-side failures at error level and client errors at debug.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("request_id", requestcontext.RequestID(ctx)), zap.Error(err))
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeUnavailable, dErrors.CodeTimeout:
		h.logger.Error(msg, fields...)
	default:
		h.logger.Debug(msg, fields...)
	}
}
