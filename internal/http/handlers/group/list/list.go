// Package list implements the endpoint returning the caller's groups.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
)

// Handler serves group listings.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind group listings.
type Service interface {
	ListForUser(ctx context.Context, userUID string) ([]*models.Group, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary List own groups
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Groups"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /groups/my [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.group.list"
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

	groups, err := h.service.ListForUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list groups", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list groups"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"groups": groups,
	}))
}
