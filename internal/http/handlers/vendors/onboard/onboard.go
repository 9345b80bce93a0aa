// Package onboard implements the vendor onboarding endpoint. The new
// profile starts unverified and is hidden from public listings until an
// admin approves it.
package onboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/services/vendors"
)

// Request is the onboarding form.
type Request struct {
	BusinessName  string   `json:"business_name" validate:"required,min=2,max=120"`
	Category      string   `json:"category" validate:"required"`
	City          string   `json:"city" validate:"required"`
	Bio           string   `json:"bio,omitempty" validate:"max=5000"`
	WhatsappLink  string   `json:"whatsapp_link,omitempty" validate:"omitempty,url"`
	GalleryImages []string `json:"gallery_images,omitempty"`
	PortfolioDocs []string `json:"portfolio_docs,omitempty"`
}

// Handler serves vendor onboarding.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the business logic behind onboarding.
type Service interface {
	Onboard(ctx context.Context, ownerUID string, in vendor.OnboardInput) (*models.VendorProfile, error)
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
// @Summary Become a vendor
// @Description Creates an unverified vendor profile for the caller. One profile per user.
// @Tags Vendors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body onboard.Request true "Onboarding form"
// @Success 200 {object} map[string]any "Created profile"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 409 {object} response.ErrorResponse "Profile already exists"
// @Failure 422 {object} response.ErrorResponse "Validation failed"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /vendor/onboard [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vendor.onboard"
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

	profile, err := h.service.Onboard(r.Context(), userUID, vendor.OnboardInput{
		BusinessName:  req.BusinessName,
		Category:      req.Category,
		City:          req.City,
		Bio:           req.Bio,
		WhatsappLink:  req.WhatsappLink,
		GalleryImages: req.GalleryImages,
		PortfolioDocs: req.PortfolioDocs,
	})
	if errors.Is(err, vendor.ErrAlreadyExists) {
		log.Error("vendor profile already exists")
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("vendor profile already exists"))
		return
	}
	if err != nil {
		log.Error("failed to create vendor profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create vendor profile"))
		return
	}

	log.Info("vendor profile created", slog.Int64("id", profile.ID))
	render.JSON(w, r, response.StatusOKWithData(profile))
}
