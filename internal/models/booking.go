package models

import "time"

// BookingStatusPending — начальный статус заявки на консультацию.
// Других переходов статуса в системе нет.
const BookingStatusPending = "pending"

// Booking представляет заявку на консультацию. Заявку может оставить
// и неавторизованный посетитель, поэтому email не обязан совпадать
// с учётной записью.
type Booking struct {
	ID            string    `json:"id"`              // Уникальный идентификатор заявки
	UserEmail     string    `json:"user_email"`      // Email заявителя
	PreferredDate string    `json:"preferred_date"`  // Желаемая дата (строка, без календарной валидации)
	PreferredTime string    `json:"preferred_time"`  // Желаемое время (строка)
	Notes         *string   `json:"notes,omitempty"` // Комментарий заявителя
	Status        string    `json:"status"`          // Статус заявки, всегда pending
	CreatedAt     time.Time `json:"created_at"`      // Дата создания
}
