// Package redeem implements the HTTP handler the destination app calls
// to finish a session handoff. The exchange code works exactly once;
// replaying it fails.
package redeem

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/services/bridge"
)

// Request carries the single-use exchange code.
type Request struct {
	Code string `json:"code" validate:"required,uuid"`
}

// Handler serves bridge-redeem requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the bridge logic behind redemption.
type Service interface {
	Redeem(ctx context.Context, code string) (string, *models.User, error)
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
// @Summary Redeem a session handoff code
// @Description Exchanges a single-use code for a freshly minted session token and the current profile. A second redemption of the same code fails.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body redeem.Request true "Exchange code"
// @Success 200 {object} map[string]any "Session token and profile"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 401 {object} response.ErrorResponse "Unknown, expired or already used code"
// @Failure 422 {object} response.ErrorResponse "Validation failed"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /auth/bridge/redeem [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.redeem"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	token, user, err := h.service.Redeem(r.Context(), req.Code)
	if errors.Is(err, bridge.ErrCodeInvalid) {
		log.Error("invalid exchange code")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid or expired exchange code"))
		return
	}
	if err != nil {
		log.Error("failed to redeem exchange code", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not redeem exchange code"))
		return
	}

	log.Info("session handoff completed")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
		"user":  user,
	}))
}
