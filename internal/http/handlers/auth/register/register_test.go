package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/services/auth"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, name, rawPassword string, gdprConsent, marketingConsent bool) (string, *models.User, error) {
	args := m.Called(ctx, email, name, rawPassword, gdprConsent, marketingConsent)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "успешная регистрация",
			requestBody: Request{
				Email:       "user@example.com",
				Name:        "User",
				Password:    "secret123",
				GDPRConsent: true,
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user@example.com", "User", "secret123", true, false).
					Return("tok", &models.User{Email: "user@example.com", Name: "User", Role: models.RoleUser}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
		},
		{
			name: "ошибка валидации - короткий пароль",
			requestBody: Request{
				Email:       "user@example.com",
				Name:        "User",
				Password:    "123",
				GDPRConsent: true,
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "без согласия на обработку данных",
			requestBody: Request{
				Email:    "user@example.com",
				Name:     "User",
				Password: "secret123",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "gdpr consent is required",
		},
		{
			name: "email уже занят",
			requestBody: Request{
				Email:       "user@example.com",
				Name:        "User",
				Password:    "secret123",
				GDPRConsent: true,
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return("", nil, auth.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "email already registered",
		},
		{
			name: "внутренняя ошибка сервиса",
			requestBody: Request{
				Email:       "user@example.com",
				Name:        "User",
				Password:    "secret123",
				GDPRConsent: true,
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return("", nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockService)
			tt.setupMock(mockSvc)

			handler := New(newNoopLogger(), mockSvc)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}
