// Package models содержит доменную модель пользователя платформы,
// включающую данные учётной записи, хэш пароля, флаги согласий
// и приобретённые материалы. Структура используется в бизнес‑логике
// и при работе с хранилищем.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя платформы.
type User struct {
	UID              string    // Уникальный идентификатор пользователя
	Email            string    // Электронная почта (уникальная, неизменяемая)
	Name             string    // Отображаемое имя
	PasswordHash     string    // Хэш пароля пользователя
	Role             string    // Роль пользователя, admin или user
	IsPremium        bool      // Признак оплаченного полного курса
	GDPRConsent      bool      // Согласие на обработку персональных данных
	MarketingConsent bool      // Согласие на маркетинговые рассылки
	PurchasedItems   []string  // Идентификаторы купленных материалов (множество)
	CreatedAt        time.Time // Дата регистрации
}

// HasPurchased сообщает, куплен ли материал с данным идентификатором.
func (u *User) HasPurchased(contentID string) bool {
	for _, id := range u.PurchasedItems {
		if id == contentID {
			return true
		}
	}
	return false
}
