// Package stats implements the admin dashboard counters endpoint.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
)

// Handler serves platform stats.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind platform stats.
type Service interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Platform statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Counters"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Admin access required"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to count stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not count stats"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(stats))
}
