// Package list implements the public vendor discovery endpoint with
// optional category and city filters.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
)

const defaultLimit = 20

// Handler serves vendor listings.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind vendor discovery.
type Service interface {
	List(ctx context.Context, filter models.VendorFilter, limit, offset int) ([]*models.VendorProfile, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary List verified vendors
// @Description Public discovery listing, filterable by category and city.
// @Tags Vendors
// @Produce json
// @Param category query string false "Vendor category"
// @Param city query string false "City"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} map[string]any "Vendor profiles"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /vendors [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vendor.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.VendorFilter{
		Category: r.URL.Query().Get("category"),
		City:     r.URL.Query().Get("city"),
	}
	limit, offset := pagination(r)

	vendors, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		log.Error("failed to list vendors", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list vendors"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"vendors": vendors,
		"limit":   limit,
		"offset":  offset,
	}))
}

func pagination(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
