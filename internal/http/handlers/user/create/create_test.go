package create

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

	"github.com/aerosync-io/aerosync/internal/models"
	authservice "github.com/aerosync-io/aerosync/internal/services/auth"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ProvisionUser(ctx context.Context, userType, email, name, phone string, isPilot *bool) (*models.User, error) {
	args := m.Called(ctx, userType, email, name, phone, isPilot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	created := &models.User{
		ID:       21,
		Email:    "pilot@airline.com",
		UserType: models.UserTypeCrew,
		IsPilot:  true,
	}

	tests := []struct {
		name           string
		body           string
		setupMocks     func(s *ServiceMock)
		wantStatusCode int
		wantErrorCode  string
	}{
		{
			name: "successful creation returns default password",
			body: `{"user_type": "crew", "email": "pilot@airline.com", "name": "New Pilot", "is_pilot": true}`,
			setupMocks: func(s *ServiceMock) {
				s.On("ProvisionUser", mock.Anything, "crew", "pilot@airline.com", "New Pilot", "",
					mock.MatchedBy(func(p *bool) bool { return p != nil && *p })).Return(created, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "malformed json",
			body:           `{"user_type": `,
			setupMocks:     func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantErrorCode:  "INVALID_REQUEST",
		},
		{
			name:           "missing email",
			body:           `{"user_type": "admin", "name": "New Admin"}`,
			setupMocks:     func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown user type",
			body: `{"user_type": "superuser", "email": "x@airline.com", "name": "X"}`,
			setupMocks: func(s *ServiceMock) {
				s.On("ProvisionUser", mock.Anything, "superuser", "x@airline.com", "X", "",
					(*bool)(nil)).Return(nil, models.ErrUnknownUserType).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantErrorCode:  "INVALID_USER_TYPE",
		},
		{
			name: "crew without pilot flag",
			body: `{"user_type": "crew", "email": "x@airline.com", "name": "X"}`,
			setupMocks: func(s *ServiceMock) {
				s.On("ProvisionUser", mock.Anything, "crew", "x@airline.com", "X", "",
					(*bool)(nil)).Return(nil, authservice.ErrPilotFlagRequired).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantErrorCode:  "INVALID_REQUEST",
		},
		{
			name: "pilot flag on scheduler",
			body: `{"user_type": "scheduler", "email": "x@airline.com", "name": "X", "is_pilot": false}`,
			setupMocks: func(s *ServiceMock) {
				s.On("ProvisionUser", mock.Anything, "scheduler", "x@airline.com", "X", "",
					mock.Anything).Return(nil, authservice.ErrPilotFlagNotAllowed).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantErrorCode:  "INVALID_REQUEST",
		},
		{
			name: "duplicate email",
			body: `{"user_type": "crew", "email": "pilot@airline.com", "name": "New Pilot", "is_pilot": true}`,
			setupMocks: func(s *ServiceMock) {
				s.On("ProvisionUser", mock.Anything, "crew", "pilot@airline.com", "New Pilot", "",
					mock.Anything).Return(nil, repository.ErrAlreadyExists).Once()
			},
			wantStatusCode: http.StatusConflict,
			wantErrorCode:  "ALREADY_EXISTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMocks(svc)

			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/users", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			if tt.wantStatusCode == http.StatusCreated {
				assert.Equal(t, true, got["success"])
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "pilot@airline.com", data["email"])
				assert.Equal(t, "crew", data["user_type"])
				assert.Equal(t, authservice.DefaultPassword, data["default_password"])
			} else if tt.wantErrorCode != "" {
				assert.Equal(t, false, got["success"])
				assert.Equal(t, tt.wantErrorCode, got["error"])
			}

			svc.AssertExpectations(t)
		})
	}
}
