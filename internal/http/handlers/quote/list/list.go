// Package list implements the quote request listings for both sides of
// the marketplace: the organizer's outbox and the vendor's inbox.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/services/quote"
)

const defaultLimit = 20

// Handler serves quote request listings.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind the listings.
type Service interface {
	ListForOrganizer(ctx context.Context, organizerUID string, limit, offset int) ([]*models.QuoteRequest, error)
	ListForVendor(ctx context.Context, ownerUID string, limit, offset int) ([]*models.QuoteRequest, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Organizer godoc
// @Summary List own quote requests
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} map[string]any "Quote requests"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /quotes/organizer [get]
func (h *Handler) Organizer(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "handlers.quote.list.organizer", h.service.ListForOrganizer)
}

// Vendor godoc
// @Summary List quote requests addressed to own vendor profile
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} map[string]any "Quote requests"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 404 {object} response.ErrorResponse "No vendor profile"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /quotes/vendor [get]
func (h *Handler) Vendor(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "handlers.quote.list.vendor", h.service.ListForVendor)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, uid string, limit, offset int) ([]*models.QuoteRequest, error)) {
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

	limit := defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}

	quotes, err := fn(r.Context(), userUID, limit, offset)
	if errors.Is(err, quote.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("vendor profile not found"))
		return
	}
	if err != nil {
		log.Error("failed to list quote requests", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list quote requests"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"quotes": quotes,
		"limit":  limit,
		"offset": offset,
	}))
}
