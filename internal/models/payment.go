package models

import "time"

// Статусы платёжной транзакции. Переходы только в одну сторону:
// pending -> completed либо pending -> failed.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment представляет платёжную транзакцию за пакет курса.
type Payment struct {
	ID          string     `json:"id"`                     // Внутренний идентификатор транзакции
	OrderRef    string     `json:"order_ref"`              // Идентификатор заказа, выданный платёжным провайдером
	UserEmail   string     `json:"user_email"`             // Email покупателя
	PackageID   string     `json:"package_id"`             // Идентификатор пакета из прайс-листа
	Amount      float64    `json:"amount"`                 // Сумма платежа
	Currency    string     `json:"currency"`               // Валюта платежа
	Status      string     `json:"status"`                 // Статус: pending, completed, failed
	CreatedAt   time.Time  `json:"created_at"`             // Дата создания
	CompletedAt *time.Time `json:"completed_at,omitempty"` // Дата завершения (для completed)
}
