package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/maroungit7573/natours/internal/models"
)

// WelcomePublisher публикует приветственные письма в очередь.
type WelcomePublisher struct {
	ch *amqp.Channel
}

func NewWelcomePublisher(ch *amqp.Channel) *WelcomePublisher {
	return &WelcomePublisher{ch: ch}
}

// PublishWelcome отправляет сообщение о регистрации нового пользователя.
func (p *WelcomePublisher) PublishWelcome(msg models.WelcomeEmail) error {
	return PublishMessage(p.ch, EmailExchange, WelcomeRoutingKey, msg)
}
