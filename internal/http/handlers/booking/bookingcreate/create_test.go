package bookingcreate

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
)

// MockService реализует интерфейс bookingcreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, booking models.Booking) (string, error) {
	args := m.Called(ctx, booking)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestBookingCreateHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "анонимная заявка создаётся",
			requestBody: Request{
				Email:         "guest@example.com",
				PreferredDate: "2026-09-15",
				PreferredTime: "10:00",
			},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(b models.Booking) bool {
					return b.UserEmail == "guest@example.com" && b.PreferredDate == "2026-09-15"
				})).Return("b1", nil)
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
			name: "ошибка валидации - нет даты",
			requestBody: Request{
				Email:         "guest@example.com",
				PreferredTime: "10:00",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "field PreferredDate is a required field",
		},
		{
			name: "невалидный email",
			requestBody: Request{
				Email:         "not-an-email",
				PreferredDate: "2026-09-15",
				PreferredTime: "10:00",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "field Email must be a valid email",
		},
		{
			name: "ошибка сервиса",
			requestBody: Request{
				Email:         "guest@example.com",
				PreferredDate: "2026-09-15",
				PreferredTime: "10:00",
			},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return("", errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to create booking",
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

			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
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
