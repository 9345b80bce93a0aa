// Package track implements the telemetry ingestion endpoint. The reply
// is always OK; a broker failure is never the client's problem.
package track

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
)

// Request is one telemetry event.
type Request struct {
	EntityType string `json:"entity_type" validate:"required"`
	EntityID   string `json:"entity_id" validate:"required"`
	Action     string `json:"action" validate:"required"`
}

// Handler serves telemetry ingestion.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service publishes telemetry events.
type Service interface {
	Track(ctx context.Context, entityType, entityID, action, userUID string)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Track an activity event
// @Tags Activity
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body track.Request true "Event"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 422 {object} response.ErrorResponse "Validation failed"
// @Router /track/activity [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.activity.track"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, _ := r.Context().Value(middlewarectx.UserUID).(string)
	h.service.Track(r.Context(), req.EntityType, req.EntityID, req.Action, userUID)

	render.JSON(w, r, response.StatusOKWithData(nil))
}
