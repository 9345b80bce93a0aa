// Package read implements the single-event endpoint, including the
// event's shortlisted vendors.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/services/event"
)

// Handler serves single-event reads.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind event reads.
type Service interface {
	Read(ctx context.Context, actorUID string, id int64) (*models.Event, error)
	ShortlistedVendors(ctx context.Context, actorUID string, eventID int64) ([]*models.VendorProfile, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Get an event with its shortlist
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]any "Event and shortlisted vendors"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Not the event owner"
// @Failure 404 {object} response.ErrorResponse "Event not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /events/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.read"
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

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid event id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid event id"))
		return
	}

	ev, err := h.service.Read(r.Context(), userUID, id)
	if errors.Is(err, event.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("event not found"))
		return
	}
	if errors.Is(err, event.ErrForbidden) {
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("not permitted"))
		return
	}
	if err != nil {
		log.Error("failed to read event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read event"))
		return
	}

	shortlist, err := h.service.ShortlistedVendors(r.Context(), userUID, id)
	if err != nil {
		log.Error("failed to read shortlist", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read shortlist"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"event":     ev,
		"shortlist": shortlist,
	}))
}
