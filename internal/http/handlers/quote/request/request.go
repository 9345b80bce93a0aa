// Package request implements the endpoint an organizer calls to ask a
// vendor for a quote.
package request

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/services/quote"
)

// Request is the quote request form.
type Request struct {
	VendorID            int64      `json:"vendor_id" validate:"required,gt=0"`
	EventID             int64      `json:"event_id" validate:"required,gt=0"`
	Message             string     `json:"message" validate:"required,max=5000"`
	BudgetRange         string     `json:"budget_range,omitempty"`
	SpecialRequirements string     `json:"special_requirements,omitempty" validate:"max=5000"`
	ResponseDeadline    *time.Time `json:"response_deadline,omitempty"`
}

// Handler serves quote request creation.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the business logic behind quote requests.
type Service interface {
	Request(ctx context.Context, organizerUID string, in quote.RequestInput) (int64, error)
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
// @Summary Request a quote from a vendor
// @Description Creates a pending quote request. One request per vendor and event.
// @Tags Quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.Request true "Quote request form"
// @Success 200 {object} map[string]any "Created quote request ID"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Event belongs to another user"
// @Failure 404 {object} response.ErrorResponse "Vendor or event not found"
// @Failure 409 {object} response.ErrorResponse "Request already exists"
// @Failure 422 {object} response.ErrorResponse "Validation failed"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /quotes/request [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.quote.request"
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

	id, err := h.service.Request(r.Context(), userUID, quote.RequestInput{
		VendorID:            req.VendorID,
		EventID:             req.EventID,
		Message:             req.Message,
		BudgetRange:         req.BudgetRange,
		SpecialRequirements: req.SpecialRequirements,
		ResponseDeadline:    req.ResponseDeadline,
	})
	switch {
	case errors.Is(err, quote.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("vendor or event not found"))
		return
	case errors.Is(err, quote.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("not permitted"))
		return
	case errors.Is(err, quote.ErrDuplicate):
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("quote request already exists for this vendor and event"))
		return
	case err != nil:
		log.Error("failed to create quote request", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create quote request"))
		return
	}

	log.Info("quote request created", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
