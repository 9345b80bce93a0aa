// Package decide implements the organizer's decisions on a quoted
// request: accept, reject or ask for a revision.
package decide

import (
	"context"
	"encoding/json"
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
	"github.com/bventy/platform/internal/services/quote"
)

// RevisionRequest carries the organizer's feedback for the vendor.
type RevisionRequest struct {
	Note string `json:"note"`
}

// Handler serves organizer decisions.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the business logic behind decisions.
type Service interface {
	Accept(ctx context.Context, actorUID string, quoteID int64) (*models.QuoteRequest, error)
	Reject(ctx context.Context, actorUID string, quoteID int64) (*models.QuoteRequest, error)
	RequestRevision(ctx context.Context, actorUID string, quoteID int64, note string) (*models.QuoteRequest, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Accept godoc
// @Summary Accept a quote
// @Description Accepts the vendor's quote and opens the mutual contact window.
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quote request ID"
// @Success 200 {object} map[string]any "Updated quote request"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Not the requesting organizer"
// @Failure 404 {object} response.ErrorResponse "Quote request not found"
// @Failure 409 {object} response.ErrorResponse "Request has no open quote"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /quotes/accept/{id} [patch]
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "handlers.quote.accept", func(ctx context.Context, uid string, id int64) (*models.QuoteRequest, error) {
		return h.service.Accept(ctx, uid, id)
	})
}

// Reject godoc
// @Summary Reject a quote
// @Description Rejects the quote request. The decision is final.
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quote request ID"
// @Success 200 {object} map[string]any "Updated quote request"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Not the requesting organizer"
// @Failure 404 {object} response.ErrorResponse "Quote request not found"
// @Failure 409 {object} response.ErrorResponse "Request has no open quote"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /quotes/reject/{id} [patch]
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "handlers.quote.reject", func(ctx context.Context, uid string, id int64) (*models.QuoteRequest, error) {
		return h.service.Reject(ctx, uid, id)
	})
}

// Revision godoc
// @Summary Ask for a revised quote
// @Description Sends the quote back to the vendor with feedback.
// @Tags Quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quote request ID"
// @Param request body decide.RevisionRequest false "Feedback for the vendor"
// @Success 200 {object} map[string]any "Updated quote request"
// @Failure 400 {object} response.ErrorResponse "Malformed request body"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Not the requesting organizer"
// @Failure 404 {object} response.ErrorResponse "Quote request not found"
// @Failure 409 {object} response.ErrorResponse "Request has no open quote"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /quotes/request-revision/{id} [patch]
func (h *Handler) Revision(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.quote.revision"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// feedback is optional, an empty or absent body means none
	var req RevisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	h.decide(w, r, "handlers.quote.revision", func(ctx context.Context, uid string, id int64) (*models.QuoteRequest, error) {
		return h.service.RequestRevision(ctx, uid, id, req.Note)
	})
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, actorUID string, quoteID int64) (*models.QuoteRequest, error)) {
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

	updated, err := fn(r.Context(), userUID, quoteID)
	switch {
	case errors.Is(err, quote.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("quote request not found"))
	case errors.Is(err, quote.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("not permitted"))
	case errors.Is(err, quote.ErrInvalidTransition):
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("quote request has no open quote"))
	case err != nil:
		log.Error("failed to update quote request", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update quote request"))
	default:
		log.Info("quote decision recorded", slog.Int64("id", quoteID), slog.String("status", string(updated.Status)))
		render.JSON(w, r, response.StatusOKWithData(updated))
	}
}
