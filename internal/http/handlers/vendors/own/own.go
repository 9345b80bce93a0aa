// Package own implements the endpoint returning the caller's vendor
// profile, verified or not. The vendor app uses it for the dashboard.
package own

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/services/vendors"
)

// Handler serves own-profile reads.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind own-profile reads.
type Service interface {
	ReadOwn(ctx context.Context, ownerUID string) (*models.VendorProfile, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Get own vendor profile
// @Tags Vendors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Vendor profile"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 404 {object} response.ErrorResponse "No vendor profile"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /vendor/profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vendor.own"
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

	profile, err := h.service.ReadOwn(r.Context(), userUID)
	if errors.Is(err, vendor.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("vendor profile not found"))
		return
	}
	if err != nil {
		log.Error("failed to read vendor profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read vendor profile"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(profile))
}
