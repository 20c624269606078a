// Package content содержит бизнес-логику каталога материалов:
// загрузку, выдачу содержимого с проверкой прав и списки по секциям
// с кешированием.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Ошибки валидации загружаемого материала.
var (
	// ErrEmptyPayload — загрузка без содержимого файла.
	ErrEmptyPayload = errors.New("payload must not be empty")
	// ErrPriceRequired — материал секции extra обязан иметь цену.
	ErrPriceRequired = errors.New("price is required for extra content")
	// ErrUnknownSection — секция не из списка поддерживаемых.
	ErrUnknownSection = errors.New("unknown content section")
)

// ContentRepository определяет методы для работы с каталогом в хранилище.
type ContentRepository interface {
	// CreateContent добавляет новый материал и возвращает его ID.
	CreateContent(ctx context.Context, item models.ContentItem) (string, error)
	// GetContent возвращает материал вместе с содержимым.
	GetContent(ctx context.Context, contentID string) (*models.ContentItem, error)
	// ListContentBySection возвращает метаданные материалов секции.
	ListContentBySection(ctx context.Context, section string) ([]*models.ContentItem, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Entitlements описывает решение о допуске пользователя к материалу.
type Entitlements interface {
	DecideAccess(user *models.User, item *models.ContentItem) error
}

// ContentService реализует бизнес-логику каталога материалов.
type ContentService struct {
	repo         ContentRepository
	cache        Cache
	entitlements Entitlements
	log          *slog.Logger
}

// NewContentService создает новый экземпляр ContentService.
func NewContentService(repo ContentRepository, cache Cache, entitlements Entitlements, log *slog.Logger) *ContentService {
	return &ContentService{
		repo:         repo,
		cache:        cache,
		entitlements: entitlements,
		log:          log,
	}
}

func sectionCacheKey(section string) string {
	return fmt.Sprintf("content:section:%s", section)
}

// Upload проверяет и сохраняет новый материал, возвращает его ID.
// Секция назначается один раз при загрузке и далее не меняется.
func (s *ContentService) Upload(ctx context.Context, item models.ContentItem) (string, error) {
	switch item.Section {
	case models.SectionFree, models.SectionPremium, models.SectionExtra:
	default:
		return "", ErrUnknownSection
	}
	if len(item.Payload) == 0 {
		return "", ErrEmptyPayload
	}
	if item.Section == models.SectionExtra && (item.Price == nil || *item.Price <= 0) {
		return "", ErrPriceRequired
	}

	id, err := s.repo.CreateContent(ctx, item)
	if err != nil {
		return "", err
	}
	s.log.Info("content uploaded",
		slog.String("id", id),
		slog.String("section", item.Section),
		slog.String("uploaded_by", item.UploadedBy))

	cacheKey := sectionCacheKey(item.Section)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate section cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return id, nil
}

// ListBySection возвращает метаданные материалов секции, используя кеш
// или репозиторий.
func (s *ContentService) ListBySection(ctx context.Context, section string) ([]*models.ContentItem, error) {
	var result []*models.ContentItem
	cacheKey := sectionCacheKey(section)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read section cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListContentBySection(ctx, section)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache section list", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// ListExtraForUser возвращает материалы секции extra с признаком покупки
// для данного пользователя.
func (s *ContentService) ListExtraForUser(ctx context.Context, user *models.User) ([]models.ContentItemView, error) {
	items, err := s.ListBySection(ctx, models.SectionExtra)
	if err != nil {
		return nil, err
	}
	views := make([]models.ContentItemView, 0, len(items))
	for _, item := range items {
		views = append(views, models.ContentItemView{
			ContentItem: *item,
			IsPurchased: user.HasPurchased(item.ID),
		})
	}
	return views, nil
}

// FetchPayload возвращает материал с бинарным содержимым, если пользователь
// имеет к нему доступ. Решение о допуске принимает Entitlements.
func (s *ContentService) FetchPayload(ctx context.Context, user *models.User, contentID string) (*models.ContentItem, error) {
	item, err := s.repo.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if err := s.entitlements.DecideAccess(user, item); err != nil {
		return nil, err
	}
	return item, nil
}
