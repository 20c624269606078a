package content

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/services/entitlement"
)

// MockContentRepository реализует интерфейс ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) CreateContent(ctx context.Context, item models.ContentItem) (string, error) {
	args := m.Called(ctx, item)
	return args.String(0), args.Error(1)
}

func (m *MockContentRepository) GetContent(ctx context.Context, contentID string) (*models.ContentItem, error) {
	args := m.Called(ctx, contentID)
	item, _ := args.Get(0).(*models.ContentItem)
	return item, args.Error(1)
}

func (m *MockContentRepository) ListContentBySection(ctx context.Context, section string) ([]*models.ContentItem, error) {
	args := m.Called(ctx, section)
	items, _ := args.Get(0).([]*models.ContentItem)
	return items, args.Error(1)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(repo *MockContentRepository, cache *MockCache) *ContentService {
	engine := entitlement.NewEngine(nil, newNoopLogger())
	return NewContentService(repo, cache, engine, newNoopLogger())
}

func TestUpload_Validation(t *testing.T) {
	price := 10.99
	zero := 0.0

	tests := []struct {
		name    string
		item    models.ContentItem
		wantErr error
	}{
		{
			name:    "неизвестная секция",
			item:    models.ContentItem{Section: "archive", Payload: []byte("x")},
			wantErr: ErrUnknownSection,
		},
		{
			name:    "пустое содержимое",
			item:    models.ContentItem{Section: models.SectionFree},
			wantErr: ErrEmptyPayload,
		},
		{
			name:    "extra без цены",
			item:    models.ContentItem{Section: models.SectionExtra, Payload: []byte("x")},
			wantErr: ErrPriceRequired,
		},
		{
			name:    "extra с нулевой ценой",
			item:    models.ContentItem{Section: models.SectionExtra, Payload: []byte("x"), Price: &zero},
			wantErr: ErrPriceRequired,
		},
		{
			name: "extra с ценой проходит",
			item: models.ContentItem{Section: models.SectionExtra, Payload: []byte("x"), Price: &price},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockContentRepository)
			cache := new(MockCache)
			if tt.wantErr == nil {
				repo.On("CreateContent", mock.Anything, mock.Anything).Return("c1", nil)
				cache.On("Invalidate", mock.Anything).Return(nil)
			}

			svc := newService(repo, cache)
			_, err := svc.Upload(context.Background(), tt.item)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUpload_InvalidatesSectionCache(t *testing.T) {
	repo := new(MockContentRepository)
	cache := new(MockCache)
	repo.On("CreateContent", mock.Anything, mock.Anything).Return("c1", nil)
	cache.On("Invalidate", "content:section:free").Return(nil)

	svc := newService(repo, cache)
	_, err := svc.Upload(context.Background(), models.ContentItem{
		Section: models.SectionFree,
		Payload: []byte("data"),
	})

	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestListBySection_CacheMiss(t *testing.T) {
	repo := new(MockContentRepository)
	cache := new(MockCache)
	items := []*models.ContentItem{{ID: "c1", Section: models.SectionFree}}

	cache.On("Get", "content:section:free", mock.Anything).Return(false, nil)
	repo.On("ListContentBySection", mock.Anything, models.SectionFree).Return(items, nil)
	cache.On("Set", "content:section:free", items, time.Hour).Return(nil)

	svc := newService(repo, cache)
	result, err := svc.ListBySection(context.Background(), models.SectionFree)

	require.NoError(t, err)
	assert.Len(t, result, 1)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestListBySection_CacheHit(t *testing.T) {
	repo := new(MockContentRepository)
	cache := new(MockCache)

	cache.On("Get", "content:section:free", mock.Anything).Return(true, nil)

	svc := newService(repo, cache)
	_, err := svc.ListBySection(context.Background(), models.SectionFree)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "ListContentBySection", mock.Anything, mock.Anything)
}

func TestListExtraForUser_PurchaseFlags(t *testing.T) {
	repo := new(MockContentRepository)
	cache := new(MockCache)
	items := []*models.ContentItem{
		{ID: "c1", Section: models.SectionExtra},
		{ID: "c2", Section: models.SectionExtra},
	}

	cache.On("Get", "content:section:extra", mock.Anything).Return(false, nil)
	repo.On("ListContentBySection", mock.Anything, models.SectionExtra).Return(items, nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newService(repo, cache)
	user := &models.User{UID: "u1", PurchasedItems: []string{"c2"}}
	views, err := svc.ListExtraForUser(context.Background(), user)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.False(t, views[0].IsPurchased)
	assert.True(t, views[1].IsPurchased)
}

func TestFetchPayload_AccessDenied(t *testing.T) {
	repo := new(MockContentRepository)
	cache := new(MockCache)
	repo.On("GetContent", mock.Anything, "c1").
		Return(&models.ContentItem{ID: "c1", Section: models.SectionPremium, Payload: []byte("data")}, nil)

	svc := newService(repo, cache)
	_, err := svc.FetchPayload(context.Background(), &models.User{UID: "u1"}, "c1")

	assert.ErrorIs(t, err, entitlement.ErrPremiumRequired)
}

func TestFetchPayload_FreeWithoutUser(t *testing.T) {
	repo := new(MockContentRepository)
	cache := new(MockCache)
	repo.On("GetContent", mock.Anything, "c1").
		Return(&models.ContentItem{ID: "c1", Section: models.SectionFree, Payload: []byte("data")}, nil)

	svc := newService(repo, cache)
	item, err := svc.FetchPayload(context.Background(), nil, "c1")

	require.NoError(t, err)
	assert.Equal(t, []byte("data"), item.Payload)
}
