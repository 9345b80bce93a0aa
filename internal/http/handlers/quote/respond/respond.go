// Package respond implements the endpoint a vendor calls to quote a
// price. The body is multipart: the form fields plus an optional
// proposal document uploaded to media storage.
package respond

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/services/media"
	"github.com/bventy/platform/internal/services/quote"
)

// Handler serves vendor quote responses.
type Handler struct {
	log      *slog.Logger
	service  Service
	uploader Uploader
}

// Service is the business logic behind quote responses.
type Service interface {
	Respond(ctx context.Context, actorUID string, quoteID int64, price float64, message, attachmentURL string) (*models.QuoteRequest, error)
}

// Uploader stores the optional proposal document.
type Uploader interface {
	Upload(ctx context.Context, folder, contentType string, data []byte) (string, error)
}

// New creates a Handler with the given logger, service and uploader.
func New(log *slog.Logger, service Service, uploader Uploader) *Handler {
	return &Handler{log: log, service: service, uploader: uploader}
}

// ServeHTTP godoc
// @Summary Respond to a quote request
// @Description Records the vendor's price and message, with an optional proposal document. Allowed while the request is pending or a revision was asked.
// @Tags Quotes
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quote request ID"
// @Param quoted_price formData number true "Quoted price"
// @Param vendor_response formData string true "Response message"
// @Param attachment formData file false "Proposal document"
// @Success 200 {object} map[string]any "Updated quote request"
// @Failure 400 {object} response.ErrorResponse "Invalid form"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Not the owning vendor"
// @Failure 404 {object} response.ErrorResponse "Quote request not found"
// @Failure 409 {object} response.ErrorResponse "Request is not open for a response"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /quotes/respond/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.quote.respond"
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

	quoteID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid quote id"))
		return
	}

	if err := r.ParseMultipartForm(media.MaxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form"))
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("quoted_price"), 64)
	if err != nil || price <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("quoted_price must be a positive number"))
		return
	}
	message := r.FormValue("vendor_response")
	if message == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("vendor_response is required"))
		return
	}

	var attachmentURL string
	if file, header, err := r.FormFile("attachment"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, media.MaxUploadSize+1))
		if err != nil {
			log.Error("failed to read attachment", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("could not read attachment"))
			return
		}
		attachmentURL, err = h.uploader.Upload(r.Context(), "quotes", header.Header.Get("Content-Type"), data)
		if errors.Is(err, media.ErrTooLarge) || errors.Is(err, media.ErrUnsupportedType) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		if err != nil {
			log.Error("failed to upload attachment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not upload attachment"))
			return
		}
	}

	updated, err := h.service.Respond(r.Context(), userUID, quoteID, price, message, attachmentURL)
	switch {
	case errors.Is(err, quote.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("quote request not found"))
		return
	case errors.Is(err, quote.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("not permitted"))
		return
	case errors.Is(err, quote.ErrInvalidTransition):
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("quote request is not open for a response"))
		return
	case err != nil:
		log.Error("failed to respond to quote request", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not respond to quote request"))
		return
	}

	log.Info("quote response saved", slog.Int64("id", quoteID))
	render.JSON(w, r, response.StatusOKWithData(updated))
}
