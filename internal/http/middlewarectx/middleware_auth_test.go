package middlewarectx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aerosync-io/aerosync/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*models.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	identity := &models.Identity{
		UserID:   17,
		Email:    "pilot@airline.com",
		UserType: models.UserTypeCrew,
	}

	tests := []struct {
		name           string
		cookie         *http.Cookie
		setupMocks     func(m *AuthServiceMock)
		wantStatusCode int
		wantNextCalled bool
	}{
		{
			name:   "valid token populates context",
			cookie: &http.Cookie{Name: "auth_token", Value: "valid-token"},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "valid-token").Return(identity, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "missing cookie",
			cookie:         nil,
			setupMocks:     func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "invalid token",
			cookie: &http.Cookie{Name: "auth_token", Value: "bad-token"},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "bad-token").Return(nil, errors.New("token is invalid")).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			cookie: &http.Cookie{Name: "auth_token", Value: "expired-token"},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "expired-token").Return(nil, errors.New("token has expired")).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMocks(authMock)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, 17, r.Context().Value(UserID))
				assert.Equal(t, "pilot@airline.com", r.Context().Value(User))
				assert.Equal(t, models.UserTypeCrew, r.Context().Value(Role))
			})

			handler := JWTMiddleware(authMock, "auth_token", newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/crew/my-flights", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)

			if tt.wantStatusCode == http.StatusUnauthorized {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				// Причина отказа клиенту не детализируется.
				assert.Equal(t, "UNAUTHORIZED", got["error"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
