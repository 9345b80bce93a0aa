// Package contact implements the endpoint disclosing the other party's
// contact details after a quote is accepted. Access stops when the
// contact window closes.
package contact

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
	"github.com/bventy/platform/internal/services/quote"
)

// Handler serves contact disclosure.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind contact disclosure.
type Service interface {
	Contact(ctx context.Context, actorUID string, quoteID int64) (*models.ContactInfo, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Get the other party's contact details
// @Description Available to both parties while the quote is accepted and the contact window is open.
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quote request ID"
// @Success 200 {object} map[string]any "Contact details"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Not a party, or the quote is not accepted"
// @Failure 404 {object} response.ErrorResponse "Quote request not found"
// @Failure 410 {object} response.ErrorResponse "Contact window closed"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /quotes/{id}/contact [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.quote.contact"
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

	info, err := h.service.Contact(r.Context(), userUID, quoteID)
	switch {
	case errors.Is(err, quote.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("quote request not found"))
		return
	case errors.Is(err, quote.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("not permitted"))
		return
	case errors.Is(err, quote.ErrContactExpired):
		w.WriteHeader(http.StatusGone)
		render.JSON(w, r, response.Error("contact access expired"))
		return
	case err != nil:
		log.Error("failed to read contact details", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read contact details"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(info))
}
