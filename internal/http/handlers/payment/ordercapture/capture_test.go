package ordercapture

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/services/payment"
)

// MockService реализует интерфейс ordercapture.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CaptureOrder(ctx context.Context, orderRef string) (*models.Payment, error) {
	args := m.Called(ctx, orderRef)
	p, _ := args.Get(0).(*models.Payment)
	return p, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestOrderCaptureHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		orderRef       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:     "успешное подтверждение",
			orderRef: "ord-1",
			setupMock: func(m *MockService) {
				m.On("CaptureOrder", mock.Anything, "ord-1").
					Return(&models.Payment{OrderRef: "ord-1", Status: models.PaymentStatusCompleted}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "транзакция не найдена",
			orderRef: "missing",
			setupMock: func(m *MockService) {
				m.On("CaptureOrder", mock.Anything, "missing").
					Return(nil, payment.ErrTransactionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "transaction not found",
		},
		{
			name:     "транзакция уже отклонена",
			orderRef: "ord-2",
			setupMock: func(m *MockService) {
				m.On("CaptureOrder", mock.Anything, "ord-2").
					Return(nil, payment.ErrTransactionFailed)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "transaction already failed",
		},
		{
			name:     "ошибка провайдера",
			orderRef: "ord-3",
			setupMock: func(m *MockService) {
				m.On("CaptureOrder", mock.Anything, "ord-3").
					Return(nil, payment.ErrProviderFailure)
			},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "payment provider error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockService)
			tt.setupMock(mockSvc)

			handler := New(newNoopLogger(), mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/capture-order/"+tt.orderRef, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("orderRef", tt.orderRef)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
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
