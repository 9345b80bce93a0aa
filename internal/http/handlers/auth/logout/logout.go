// Package logout implements the HTTP handler that ends a session.
// Tokens are stateless, so logout drops the cached profile and the
// client discards the token.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
)

// Handler serves logout requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind logout.
type Service interface {
	Logout(ctx context.Context, userUID string) error
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Log out
// @Description Ends the current session.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
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

	if err := h.service.Logout(r.Context(), userUID); err != nil {
		log.Error("failed to log out", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not log out"))
		return
	}

	log.Info("user logged out", slog.String("uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
