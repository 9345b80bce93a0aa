// Package update implements the endpoint a vendor uses to edit their
// own profile. Absent fields stay unchanged.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/services/vendors"
)

// Request carries the editable fields, all optional.
type Request struct {
	BusinessName    *string  `json:"business_name,omitempty"`
	Category        *string  `json:"category,omitempty"`
	City            *string  `json:"city,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
	WhatsappLink    *string  `json:"whatsapp_link,omitempty"`
	PrimaryImageURL *string  `json:"primary_image_url,omitempty"`
	GalleryImages   []string `json:"gallery_images,omitempty"`
	PortfolioDocs   []string `json:"portfolio_docs,omitempty"`
}

// Handler serves vendor profile edits.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind profile edits.
type Service interface {
	Update(ctx context.Context, ownerUID string, in vendor.UpdateInput) (*models.VendorProfile, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Update own vendor profile
// @Tags Vendors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body update.Request true "Fields to change"
// @Success 200 {object} map[string]any "Updated profile"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 404 {object} response.ErrorResponse "No vendor profile"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /vendor/profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vendor.update"
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

	profile, err := h.service.Update(r.Context(), userUID, vendor.UpdateInput{
		BusinessName:    req.BusinessName,
		Category:        req.Category,
		City:            req.City,
		Bio:             req.Bio,
		WhatsappLink:    req.WhatsappLink,
		PrimaryImageURL: req.PrimaryImageURL,
		GalleryImages:   req.GalleryImages,
		PortfolioDocs:   req.PortfolioDocs,
	})
	if errors.Is(err, vendor.ErrNotFound) {
		log.Error("vendor profile not found")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("vendor profile not found"))
		return
	}
	if err != nil {
		log.Error("failed to update vendor profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update vendor profile"))
		return
	}

	log.Info("vendor profile updated", slog.Int64("id", profile.ID))
	render.JSON(w, r, response.StatusOKWithData(profile))
}
