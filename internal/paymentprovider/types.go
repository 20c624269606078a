package paymentprovider

// Credentials — учётные данные платёжного провайдера, берутся из
// конфигурации администратора. Пустые учётные данные переводят клиент
// в sandbox-режим с локальной генерацией идентификаторов заказов.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Configured сообщает, заданы ли учётные данные провайдера.
func (c Credentials) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Amount — сумма заказа в формате провайдера.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency_code"`
}

// Статусы заказа в контракте провайдера.
const (
	OrderStatusCreated   = "CREATED"
	OrderStatusCompleted = "COMPLETED"
)

// CreateOrderRequest — запрос на создание заказа у провайдера.
type CreateOrderRequest struct {
	Amount      Amount            `json:"amount"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// CreateOrderResponse — ответ провайдера на создание заказа.
type CreateOrderResponse struct {
	OrderID string `json:"id"`
	Status  string `json:"status"`
}

// CaptureOrderResponse — ответ провайдера на подтверждение заказа.
type CaptureOrderResponse struct {
	OrderID string `json:"id"`
	Status  string `json:"status"`
}
