// Package upload implements the generic media upload endpoint used by
// the front-end apps for avatars, gallery images and documents.
package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/services/media"
)

// allowedFolders limits where clients may place objects.
var allowedFolders = map[string]bool{
	"avatars": true,
	"vendors": true,
	"quotes":  true,
	"events":  true,
}

// Handler serves media uploads.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service stores uploaded files.
type Service interface {
	Upload(ctx context.Context, folder, contentType string, data []byte) (string, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Upload a media file
// @Description Stores an image or PDF and returns its public URL.
// @Tags Media
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param folder formData string true "Target folder" Enums(avatars, vendors, quotes, events)
// @Param file formData file true "File to upload"
// @Success 200 {object} map[string]any "Public URL"
// @Failure 400 {object} response.ErrorResponse "Invalid form"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 422 {object} response.ErrorResponse "Type or size rejected"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /media/upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.media.upload"
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

	if err := r.ParseMultipartForm(media.MaxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form"))
		return
	}

	folder := r.FormValue("folder")
	if !allowedFolders[folder] {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown target folder"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, media.MaxUploadSize+1))
	if err != nil {
		log.Error("failed to read file", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not read file"))
		return
	}

	url, err := h.service.Upload(r.Context(), folder, header.Header.Get("Content-Type"), data)
	if errors.Is(err, media.ErrTooLarge) || errors.Is(err, media.ErrUnsupportedType) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if err != nil {
		log.Error("failed to upload file", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not upload file"))
		return
	}

	log.Info("media uploaded", slog.String("uid", userUID), slog.String("url", url))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"url": url,
	}))
}
