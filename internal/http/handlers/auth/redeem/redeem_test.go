package redeem

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

	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/services/bridge"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Redeem(ctx context.Context, code string) (string, *models.User, error) {
	args := m.Called(ctx, code)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRedeemHandler_ServeHTTP(t *testing.T) {
	const code = "7b68a7f4-3c4e-4aad-9fd4-9ad258c0a17b"

	tests := []struct {
		name           string
		requestBody    any
		mockToken      string
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantStatus     string
	}{
		{
			name:           "valid code",
			requestBody:    Request{Code: code},
			mockToken:      "session-token",
			mockUser:       &models.User{UID: "uid-1", Email: "priya@example.com", Role: "user", PasswordHash: "bcrypt-digest"},
			wantStatusCode: http.StatusOK,
			wantStatus:     response.StatusOK,
		},
		{
			name:           "already used code",
			requestBody:    Request{Code: code},
			mockErr:        bridge.ErrCodeInvalid,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     response.StatusError,
		},
		{
			name:           "not a uuid",
			requestBody:    Request{Code: "short"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     response.StatusError,
		},
		{
			name:           "invalid json",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     response.StatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			serviceMock.On("Redeem", mock.Anything, code).
				Return(tt.mockToken, tt.mockUser, tt.mockErr).Maybe()
			handler := New(newNoopLogger(), serviceMock)

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/auth/bridge/redeem", bytes.NewReader(body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)

			var resp response.Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			if tt.wantStatusCode == http.StatusOK {
				data, ok := resp.Data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "session-token", data["token"])
				user, ok := data["user"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "uid-1", user["UID"])
				assert.NotContains(t, rr.Body.String(), "bcrypt-digest")
			}
		})
	}
}
