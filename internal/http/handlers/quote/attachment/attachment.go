// Package attachment implements the endpoint returning the proposal
// document URL attached to a quote response. Only the two parties may
// fetch it.
package attachment

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
	"github.com/bventy/platform/internal/services/quote"
)

// Handler serves attachment reads.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind attachment reads.
type Service interface {
	Attachment(ctx context.Context, actorUID string, quoteID int64) (string, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Get the quote's proposal document URL
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quote request ID"
// @Success 200 {object} map[string]any "Attachment URL"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Not a party to the quote"
// @Failure 404 {object} response.ErrorResponse "Quote or attachment not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /quotes/{id}/attachment [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.quote.attachment"
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

	quoteID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid quote id"))
		return
	}

	url, err := h.service.Attachment(r.Context(), userUID, quoteID)
	switch {
	case errors.Is(err, quote.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("attachment not found"))
		return
	case errors.Is(err, quote.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("not permitted"))
		return
	case err != nil:
		log.Error("failed to read attachment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read attachment"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"url": url,
	}))
}
