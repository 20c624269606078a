package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Exchange — имя exchange для всех уведомлений платформы.
const Exchange = "notifications"

// Имена очередей и ключи маршрутизации уведомлений.
const (
	BookingRequestedQueue = "booking_requested_queue"
	PaymentCompletedQueue = "payment_completed_queue"

	BookingRequestedKey = "notification.booking_requested"
	PaymentCompletedKey = "notification.payment_completed"
)

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает конфигурацию очередей уведомлений платформы.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: BookingRequestedQueue, RoutingKey: BookingRequestedKey},
		{QueueName: PaymentCompletedQueue, RoutingKey: PaymentCompletedKey},
	}
}

// SetupChannel открывает канал, объявляет exchange и привязывает очереди.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	err = ch.ExchangeDeclare(
		Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(
			q.QueueName,
			q.RoutingKey,
			Exchange,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
