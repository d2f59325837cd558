// Package mailer реализует отправку уведомлений по электронной почте:
// приветственных писем и писем со ссылкой сброса пароля.
package mailer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/lib/smtp"
)

// Service отправляет письма через SMTP-транспорт.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendWelcome отправляет приветственное письмо новому пользователю.
// url ведёт на страницу его аккаунта.
func (s *Service) SendWelcome(name, email, url string) error {
	subject := "Welcome to the Natours family!"
	bodyText := fmt.Sprintf("Hi %s,\n\n"+
		"Welcome to Natours, we're glad to have you!\n"+
		"We're all a big family here, so make sure to upload your user photo "+
		"so we get to know you a bit better.\n\n"+
		"You can manage your account here: %s\n\n"+
		"- The Natours Team", name, url)

	return s.sendEmail([]string{email}, subject, bodyText)
}

// SendPasswordReset отправляет письмо со ссылкой сброса пароля.
// Ошибка отправки возвращается вызывающему: поток forgot-password
// обязан компенсировать её очисткой токена сброса.
func (s *Service) SendPasswordReset(name, email, resetURL string) error {
	subject := "Your password reset token (valid for only 10 minutes)"
	bodyText := fmt.Sprintf("Hi %s,\n\n"+
		"Forgot your password? Submit a PATCH request with your new password "+
		"and passwordConfirm to: %s\n\n"+
		"If you didn't forget your password, please ignore this email!", name, resetURL)

	return s.sendEmail([]string{email}, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
