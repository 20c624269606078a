// Package models содержит доменную модель учебного материала:
// метаданные, секцию доступа и бинарное содержимое файла.
package models

import "time"

// Секции доступа к материалам. Секция назначается при загрузке
// и после этого не меняется.
const (
	// SectionFree — открытые материалы, доступны без авторизации.
	SectionFree = "free"
	// SectionPremium — материалы полного курса, требуют оплаченной подписки.
	SectionPremium = "premium"
	// SectionExtra — материалы с поштучной покупкой, обязаны иметь цену.
	SectionExtra = "extra"
)

// Типы содержимого материалов.
const (
	ContentTypeVideo    = "video"
	ContentTypeSlides   = "slides"
	ContentTypeDocument = "document"
)

// ContentItem представляет учебный материал каталога.
// Поле Payload не сериализуется в JSON и отдается только
// через отдельный обработчик выдачи содержимого.
type ContentItem struct {
	ID          string    `json:"id"`                // Уникальный идентификатор материала
	Title       string    `json:"title"`             // Заголовок
	Description string    `json:"description"`       // Описание
	ContentType string    `json:"content_type"`      // Тип содержимого: video, slides, document
	Section     string    `json:"section"`           // Секция доступа: free, premium, extra
	Chapter     *string   `json:"chapter,omitempty"` // Глава курса (опционально)
	Price       *float64  `json:"price,omitempty"`   // Цена (обязательна для секции extra)
	Filename    string    `json:"filename"`          // Имя исходного файла
	Payload     []byte    `json:"-"`                 // Бинарное содержимое файла
	UploadedBy  string    `json:"uploaded_by"`       // Email администратора, загрузившего материал
	CreatedAt   time.Time `json:"created_at"`        // Дата загрузки
}

// MediaType возвращает MIME-тип ответа для типа содержимого материала.
func (c *ContentItem) MediaType() string {
	switch c.ContentType {
	case ContentTypeVideo:
		return "video/mp4"
	case ContentTypeSlides:
		return "application/vnd.ms-powerpoint"
	default:
		return "application/octet-stream"
	}
}

// ContentItemView — материал секции extra с признаком покупки
// для конкретного пользователя.
type ContentItemView struct {
	ContentItem
	IsPurchased bool `json:"is_purchased"`
}
