// Package shortlist implements adding and removing vendors on an
// event's shortlist.
package shortlist

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
	"github.com/bventy/platform/internal/services/event"
)

// Handler serves shortlist mutations.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind shortlists.
type Service interface {
	Shortlist(ctx context.Context, actorUID string, eventID, vendorID int64) error
	Unshortlist(ctx context.Context, actorUID string, eventID, vendorID int64) error
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Add godoc
// @Summary Shortlist a vendor for an event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param vendorID path int true "Vendor ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Not the event owner"
// @Failure 404 {object} response.ErrorResponse "Event or vendor not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /events/{id}/shortlist/{vendorID} [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "handlers.event.shortlist.add", h.service.Shortlist)
}

// Remove godoc
// @Summary Remove a vendor from an event's shortlist
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param vendorID path int true "Vendor ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Not the event owner"
// @Failure 404 {object} response.ErrorResponse "Event not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /events/{id}/shortlist/{vendorID} [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "handlers.event.shortlist.remove", h.service.Unshortlist)
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, actorUID string, eventID, vendorID int64) error) {
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

	eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid event id"))
		return
	}
	vendorID, err := strconv.ParseInt(chi.URLParam(r, "vendorID"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid vendor id"))
		return
	}

	err = fn(r.Context(), userUID, eventID, vendorID)
	switch {
	case errors.Is(err, event.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("not found"))
	case errors.Is(err, event.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("not permitted"))
	case err != nil:
		log.Error("failed to change shortlist", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not change shortlist"))
	default:
		render.JSON(w, r, response.StatusOKWithData(nil))
	}
}
