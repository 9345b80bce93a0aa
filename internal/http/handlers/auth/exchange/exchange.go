// Package exchange implements the HTTP handler that starts a
// cross-subdomain session handoff.
//
// The authenticated caller receives a short-lived single-use code and
// the destination app URL the browser should be sent to. The session
// token itself never appears in any URL.
package exchange

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
)

// Request carries the optional post-login destination hint.
type Request struct {
	ReturnTo string `json:"return_to,omitempty"`
}

// Handler serves bridge-start requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the bridge logic behind the handoff.
type Service interface {
	Start(ctx context.Context, userUID, returnTo string) (code, destination string, err error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Start a cross-subdomain session handoff
// @Description Issues a single-use exchange code and the destination URL. The browser follows the URL carrying only the code.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body exchange.Request false "Optional destination hint"
// @Success 200 {object} map[string]any "Exchange code and redirect URL"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /auth/bridge [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.exchange"
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

	// body is optional, an empty or absent body means no hint
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	code, destination, err := h.service.Start(r.Context(), userUID, req.ReturnTo)
	if err != nil {
		log.Error("failed to start session handoff", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not start session handoff"))
		return
	}

	log.Info("session handoff started", slog.String("uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"code":         code,
		"redirect_url": destination + "?bridge_code=" + code,
	}))
}
