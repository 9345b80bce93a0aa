// Package role implements the admin role management endpoint.
package role

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/services/admin"
)

// Request carries the new role for the target user.
type Request struct {
	Role string `json:"role" validate:"required"`
}

// Handler serves role changes.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the business logic behind role changes.
type Service interface {
	UpdateRole(ctx context.Context, actorRole, targetUID, newRole string) error
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Change a user's role
// @Description Grants or revokes roles. Only a super_admin may touch super_admin.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uid path string true "Target user UID"
// @Param request body role.Request true "New role"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Insufficient privileges"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Failure 422 {object} response.ErrorResponse "Unknown role"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /admin/users/{uid}/role [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.role"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actorRole, _ := r.Context().Value(middlewarectx.Role).(string)
	targetUID := chi.URLParam(r, "uid")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.UpdateRole(r.Context(), actorRole, targetUID, req.Role)
	switch {
	case errors.Is(err, admin.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	case errors.Is(err, admin.ErrInvalidRole):
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("unknown role"))
		return
	case errors.Is(err, admin.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("insufficient privileges"))
		return
	case err != nil:
		log.Error("failed to update role", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update role"))
		return
	}

	log.Info("role updated", slog.String("uid", targetUID), slog.String("role", req.Role))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
