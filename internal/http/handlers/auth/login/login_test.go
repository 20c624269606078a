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

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
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
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "успешный вход",
			requestBody: Request{Email: "user@example.com", Password: "secret123"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "user@example.com", "secret123").
					Return("tok", &models.User{Email: "user@example.com", Role: models.RoleUser}, nil)
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
			name:           "ошибка валидации - нет пароля",
			requestBody:    Request{Email: "user@example.com"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "field Password is a required field",
		},
		{
			name:        "неверный пароль",
			requestBody: Request{Email: "user@example.com", Password: "wrong"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "user@example.com", "wrong").
					Return("", nil, auth.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "invalid email or password",
		},
		{
			name:        "несуществующий email даёт тот же ответ",
			requestBody: Request{Email: "ghost@example.com", Password: "secret123"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "ghost@example.com", "secret123").
					Return("", nil, auth.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "invalid email or password",
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

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
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
