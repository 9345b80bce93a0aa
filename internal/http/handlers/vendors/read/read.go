// Package read implements the public vendor profile page endpoint,
// addressed by slug.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/services/vendors"
)

// Handler serves single-vendor reads.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind vendor reads.
type Service interface {
	ReadBySlug(ctx context.Context, slug string) (*models.VendorProfile, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Get a vendor profile
// @Tags Vendors
// @Produce json
// @Param slug path string true "Vendor slug"
// @Success 200 {object} map[string]any "Vendor profile"
// @Failure 404 {object} response.ErrorResponse "Vendor not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /vendors/slug/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vendor.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")
	profile, err := h.service.ReadBySlug(r.Context(), slug)
	if errors.Is(err, vendor.ErrNotFound) {
		log.Error("vendor not found", slog.String("slug", slug))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("vendor not found"))
		return
	}
	if err != nil {
		log.Error("failed to read vendor", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read vendor"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(profile))
}
