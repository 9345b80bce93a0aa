package request

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bventy/platform/internal/http/middlewarectx"
	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/services/quote"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Request(ctx context.Context, organizerUID string, in quote.RequestInput) (int64, error) {
	args := m.Called(ctx, organizerUID, in)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRequestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		withUser       bool
		mockID         int64
		mockErr        error
		wantStatusCode int
		wantStatus     string
		wantError      string
	}{
		{
			name:           "valid request",
			requestBody:    Request{VendorID: 1, EventID: 2, Message: "need catering"},
			withUser:       true,
			mockID:         7,
			wantStatusCode: http.StatusOK,
			wantStatus:     response.StatusOK,
		},
		{
			name:           "unauthenticated",
			requestBody:    Request{VendorID: 1, EventID: 2, Message: "need catering"},
			withUser:       false,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     response.StatusError,
			wantError:      "unauthorized",
		},
		{
			name:           "missing message",
			requestBody:    Request{VendorID: 1, EventID: 2},
			withUser:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     response.StatusError,
		},
		{
			name:           "duplicate pair",
			requestBody:    Request{VendorID: 1, EventID: 2, Message: "need catering"},
			withUser:       true,
			mockErr:        quote.ErrDuplicate,
			wantStatusCode: http.StatusConflict,
			wantStatus:     response.StatusError,
		},
		{
			name:           "unknown vendor",
			requestBody:    Request{VendorID: 99, EventID: 2, Message: "need catering"},
			withUser:       true,
			mockErr:        quote.ErrNotFound,
			wantStatusCode: http.StatusNotFound,
			wantStatus:     response.StatusError,
		},
		{
			name:           "foreign event",
			requestBody:    Request{VendorID: 1, EventID: 5, Message: "need catering"},
			withUser:       true,
			mockErr:        quote.ErrForbidden,
			wantStatusCode: http.StatusForbidden,
			wantStatus:     response.StatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			serviceMock.On("Request", mock.Anything, "organizer-1", mock.Anything).
				Return(tt.mockID, tt.mockErr).Maybe()
			handler := New(newNoopLogger(), serviceMock)

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/quotes/request", bytes.NewReader(body))
			if tt.withUser {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "organizer-1")
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)

			var resp response.Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp.Error)
			}
			if tt.wantStatusCode == http.StatusOK {
				data, ok := resp.Data.(map[string]any)
				require.True(t, ok)
				assert.EqualValues(t, 7, data["id"])
			}
		})
	}
}
