package models

import "time"

// AdminConfig представляет единственную запись конфигурации интеграций,
// редактируемую администратором. Секреты хранятся в базе и никогда
// не возвращаются при чтении — наружу отдаются только флаги наличия.
type AdminConfig struct {
	PayPalClientID            *string   // Client ID платёжного провайдера
	PayPalClientSecret        *string   // Client Secret платёжного провайдера
	GoogleCalendarCredentials *string   // Учётные данные календаря
	UpdatedAt                 time.Time // Дата последнего обновления
}

// PayPalConfigured сообщает, заданы ли учётные данные платёжного провайдера.
func (c *AdminConfig) PayPalConfigured() bool {
	return c.PayPalClientID != nil && *c.PayPalClientID != "" &&
		c.PayPalClientSecret != nil && *c.PayPalClientSecret != ""
}

// CalendarConfigured сообщает, заданы ли учётные данные календаря.
func (c *AdminConfig) CalendarConfigured() bool {
	return c.GoogleCalendarCredentials != nil && *c.GoogleCalendarCredentials != ""
}
