package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Топология очереди исходящей почты. Приветственные письма публикуются
// при регистрации и отправляются воркером асинхронно; письма сброса
// пароля в очередь не попадают — их отправка должна завершиться
// синхронно, чтобы поток forgot-password мог компенсировать сбой.
const (
	// EmailExchange — exchange исходящей почты.
	EmailExchange = "emails"
	// WelcomeQueue — очередь приветственных писем.
	WelcomeQueue = "emails.welcome"
	// WelcomeRoutingKey — ключ маршрутизации приветственных писем.
	WelcomeRoutingKey = "welcome"
)

// SetupChannel открывает канал и объявляет exchange и очередь
// приветственных писем.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		EmailExchange,
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
	_, err = ch.QueueDeclare(
		WelcomeQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.QueueBind(WelcomeQueue, WelcomeRoutingKey, EmailExchange, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, nil
}
