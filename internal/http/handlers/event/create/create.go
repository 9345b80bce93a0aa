// Package create implements the event creation endpoint.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/services/event"
)

// Request is the event creation form. Budget is free text on purpose,
// organizers write things like "2-3 lakh" or "flexible".
type Request struct {
	Title      string     `json:"title" validate:"required,max=200"`
	EventType  string     `json:"event_type" validate:"required"`
	City       string     `json:"city,omitempty"`
	Venue      string     `json:"venue,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	GuestCount int        `json:"guest_count,omitempty" validate:"omitempty,gt=0"`
	Budget     string     `json:"budget,omitempty"`
	Notes      string     `json:"notes,omitempty" validate:"max=5000"`
}

// Handler serves event creation.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the business logic behind event creation.
type Service interface {
	Create(ctx context.Context, ownerUID string, in event.CreateInput) (*models.Event, error)
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
// @Summary Create an event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body create.Request true "Event form"
// @Success 200 {object} map[string]any "Created event"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 422 {object} response.ErrorResponse "Validation failed"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /events [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

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

	created, err := h.service.Create(r.Context(), userUID, event.CreateInput{
		Title:      req.Title,
		EventType:  req.EventType,
		City:       req.City,
		Venue:      req.Venue,
		Date:       req.Date,
		GuestCount: req.GuestCount,
		Budget:     req.Budget,
		Notes:      req.Notes,
	})
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create event"))
		return
	}

	log.Info("event created", slog.Int64("id", created.ID))
	render.JSON(w, r, response.StatusOKWithData(created))
}
