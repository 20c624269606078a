package models

// BookingEvent — сообщение о новой заявке на консультацию,
// публикуемое в очередь уведомлений.
type BookingEvent struct {
	BookingID     string `json:"booking_id"`
	UserEmail     string `json:"user_email"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	Notes         string `json:"notes,omitempty"`
}

// PaymentEvent — сообщение о завершённом платеже,
// публикуемое в очередь уведомлений.
type PaymentEvent struct {
	OrderRef    string  `json:"order_ref"`
	UserEmail   string  `json:"user_email"`
	PackageID   string  `json:"package_id"`
	PackageName string  `json:"package_name"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}
