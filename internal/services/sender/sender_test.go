package sender

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maroungit7573/natours/internal/models"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWelcome(name, email, url string) error {
	args := m.Called(name, email, url)
	return args.Error(0)
}

func newTestService(mail Mailer) *Service {
	return New(mail, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleWelcomeEmail(t *testing.T) {
	mail := new(MockMailer)
	svc := newTestService(mail)

	mail.On("SendWelcome", "Lena", "lena@example.com", "https://natours.test/me").Return(nil)

	body, err := json.Marshal(models.WelcomeEmail{
		Name:  "Lena",
		Email: "lena@example.com",
		URL:   "https://natours.test/me",
	})
	require.NoError(t, err)

	require.NoError(t, svc.HandleWelcomeEmail(body))
	mail.AssertExpectations(t)
}

func TestHandleWelcomeEmail_SendFailureRequeues(t *testing.T) {
	mail := new(MockMailer)
	svc := newTestService(mail)

	mail.On("SendWelcome", mock.Anything, mock.Anything, mock.Anything).Return(io.EOF)

	body, _ := json.Marshal(models.WelcomeEmail{Name: "Lena", Email: "lena@example.com"})
	require.Error(t, svc.HandleWelcomeEmail(body))
}

func TestHandleWelcomeEmail_MalformedMessageDropped(t *testing.T) {
	mail := new(MockMailer)
	svc := newTestService(mail)

	require.NoError(t, svc.HandleWelcomeEmail([]byte("not json")))
	mail.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything, mock.Anything)
}
