package login

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
	"github.com/bventy/platform/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	args := m.Called(ctx, email, rawPassword)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		mockToken      string
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantStatus     string
		wantError      string
	}{
		{
			name:           "valid login",
			requestBody:    Request{Email: "asha@example.com", Password: "password123"},
			mockToken:      "tok",
			mockUser:       &models.User{UID: "user-1", Email: "asha@example.com", Role: models.RoleUser},
			wantStatusCode: http.StatusOK,
			wantStatus:     response.StatusOK,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     response.StatusError,
			wantError:      "invalid request body",
		},
		{
			name:           "missing password",
			requestBody:    Request{Email: "asha@example.com"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     response.StatusError,
		},
		{
			name:           "wrong credentials",
			requestBody:    Request{Email: "asha@example.com", Password: "wrongpass"},
			mockErr:        auth.ErrInvalidCredentials,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     response.StatusError,
			wantError:      "wrong email or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			serviceMock.On("Login", mock.Anything, mock.Anything, mock.Anything).
				Return(tt.mockToken, tt.mockUser, tt.mockErr).Maybe()
			handler := New(newNoopLogger(), serviceMock)

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
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
				assert.Equal(t, "tok", data["token"])
			}
		})
	}
}
