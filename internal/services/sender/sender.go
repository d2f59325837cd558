// Package sender обрабатывает сообщения очереди исходящей почты
// и отправляет приветственные письма через SMTP.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/maroungit7573/natours/internal/models"
)

// Mailer отправляет приветственное письмо.
type Mailer interface {
	SendWelcome(name, email, url string) error
}

// Service потребляет сообщения очереди приветственных писем.
type Service struct {
	mail Mailer
	log  *slog.Logger
}

func New(mail Mailer, log *slog.Logger) *Service {
	return &Service{mail: mail, log: log}
}

// HandleWelcomeEmail разбирает сообщение очереди и отправляет письмо.
// Ошибка возвращает сообщение в очередь для повторной обработки.
func (s *Service) HandleWelcomeEmail(body []byte) error {
	const op = "services.sender.HandleWelcomeEmail"

	var msg models.WelcomeEmail
	if err := json.Unmarshal(body, &msg); err != nil {
		// Нечитаемое сообщение не станет читаемым при повторе.
		s.log.Error("failed to unmarshal welcome email message", slog.Any("err", err))
		return nil
	}

	if err := s.mail.SendWelcome(msg.Name, msg.Email, msg.URL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("welcome email sent", slog.String("email", msg.Email))
	return nil
}
