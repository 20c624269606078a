package serve

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

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/services/entitlement"
	"github.com/magabrotheeeer/course-platform/internal/storage"
)

// MockService реализует интерфейс serve.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) FetchPayload(ctx context.Context, user *models.User, contentID string) (*models.ContentItem, error) {
	args := m.Called(ctx, user, contentID)
	item, _ := args.Get(0).(*models.ContentItem)
	return item, args.Error(1)
}

// MockProfiles реализует интерфейс serve.ProfileService
type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) GetProfile(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(contentID, userEmail string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/content/"+contentID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", contentID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
	if userEmail != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserEmail, userEmail)
	}
	return req.WithContext(ctx)
}

func TestServeHandler_FreeContentAnonymous(t *testing.T) {
	mockSvc := new(MockService)
	mockProfiles := new(MockProfiles)

	item := &models.ContentItem{
		ID:          "c1",
		Section:     models.SectionFree,
		ContentType: models.ContentTypeVideo,
		Filename:    "intro.mp4",
		Payload:     []byte("video-bytes"),
	}
	mockSvc.On("FetchPayload", mock.Anything, (*models.User)(nil), "c1").Return(item, nil)

	handler := New(newNoopLogger(), mockSvc, mockProfiles)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest("c1", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "intro.mp4")
	assert.Equal(t, "video-bytes", w.Body.String())
	mockProfiles.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}

func TestServeHandler_GatedContentAnonymous(t *testing.T) {
	mockSvc := new(MockService)
	mockProfiles := new(MockProfiles)

	mockSvc.On("FetchPayload", mock.Anything, (*models.User)(nil), "c2").
		Return(nil, entitlement.ErrUnauthenticated)

	handler := New(newNoopLogger(), mockSvc, mockProfiles)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest("c2", ""))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServeHandler_PremiumRequired(t *testing.T) {
	mockSvc := new(MockService)
	mockProfiles := new(MockProfiles)

	user := &models.User{UID: "u1", Email: "user@example.com"}
	mockProfiles.On("GetProfile", mock.Anything, "user@example.com").Return(user, nil)
	mockSvc.On("FetchPayload", mock.Anything, user, "c2").
		Return(nil, entitlement.ErrPremiumRequired)

	handler := New(newNoopLogger(), mockSvc, mockProfiles)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest("c2", "user@example.com"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "premium_required")
}

func TestServeHandler_NotPurchased(t *testing.T) {
	mockSvc := new(MockService)
	mockProfiles := new(MockProfiles)

	user := &models.User{UID: "u1", Email: "user@example.com"}
	mockProfiles.On("GetProfile", mock.Anything, "user@example.com").Return(user, nil)
	mockSvc.On("FetchPayload", mock.Anything, user, "c3").
		Return(nil, entitlement.ErrNotPurchased)

	handler := New(newNoopLogger(), mockSvc, mockProfiles)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest("c3", "user@example.com"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not_purchased")
}

func TestServeHandler_NotFound(t *testing.T) {
	mockSvc := new(MockService)
	mockProfiles := new(MockProfiles)

	mockSvc.On("FetchPayload", mock.Anything, (*models.User)(nil), "missing").
		Return(nil, storage.ErrContentNotFound)

	handler := New(newNoopLogger(), mockSvc, mockProfiles)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest("missing", ""))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeHandler_SlidesMediaType(t *testing.T) {
	mockSvc := new(MockService)
	mockProfiles := new(MockProfiles)

	user := &models.User{UID: "u1", Email: "user@example.com", PurchasedItems: []string{"c4"}}
	item := &models.ContentItem{
		ID:          "c4",
		Section:     models.SectionExtra,
		ContentType: models.ContentTypeSlides,
		Filename:    "strategie.ppt",
		Payload:     []byte("ppt-bytes"),
	}
	mockProfiles.On("GetProfile", mock.Anything, "user@example.com").Return(user, nil)
	mockSvc.On("FetchPayload", mock.Anything, user, "c4").Return(item, nil)

	handler := New(newNoopLogger(), mockSvc, mockProfiles)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequest("c4", "user@example.com"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.ms-powerpoint", w.Header().Get("Content-Type"))
}
