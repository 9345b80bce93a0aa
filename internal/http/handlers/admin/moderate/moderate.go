// Package moderate implements the vendor moderation endpoints: the
// pending queue plus approve and reject.
package moderate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/services/vendors"
)

const defaultLimit = 50

// Handler serves vendor moderation.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind moderation.
type Service interface {
	ListPending(ctx context.Context, limit, offset int) ([]*models.VendorProfile, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Pending godoc
// @Summary List vendors awaiting verification
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} map[string]any "Pending vendor profiles"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Admin access required"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /admin/vendors [get]
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.moderate.pending"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}

	vendors, err := h.service.ListPending(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list pending vendors", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list pending vendors"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"vendors": vendors,
		"limit":   limit,
		"offset":  offset,
	}))
}

// Approve godoc
// @Summary Approve a vendor
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Admin access required"
// @Failure 404 {object} response.ErrorResponse "Vendor not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /admin/vendors/{id}/approve [patch]
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "handlers.admin.moderate.approve", h.service.Approve)
}

// Reject godoc
// @Summary Reject or unverify a vendor
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Admin access required"
// @Failure 404 {object} response.ErrorResponse "Vendor not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /admin/vendors/{id}/reject [patch]
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "handlers.admin.moderate.reject", h.service.Reject)
}

func (h *Handler) moderate(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, id int64) error) {
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid vendor id"))
		return
	}

	err = fn(r.Context(), id)
	switch {
	case errors.Is(err, vendor.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("vendor not found"))
	case err != nil:
		log.Error("failed to moderate vendor", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not moderate vendor"))
	default:
		log.Info("vendor moderated", slog.Int64("id", id))
		render.JSON(w, r, response.StatusOKWithData(nil))
	}
}
