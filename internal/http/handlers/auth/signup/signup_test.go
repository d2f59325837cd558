package signup_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/maroungit7573/natours/internal/config"
	"github.com/maroungit7573/natours/internal/http/handlers/auth/signup"
	"github.com/maroungit7573/natours/internal/http/session"
	"github.com/maroungit7573/natours/internal/lib/apperr"
	"github.com/maroungit7573/natours/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Signup(ctx context.Context, name, email, password, accountURL string) (*models.User, string, error) {
	args := m.Called(ctx, name, email, password, accountURL)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSignupHandler(t *testing.T) {
	emailTaken := apperr.New(apperr.KindConflict, "this email address is already in use").
		WithStatus(http.StatusBadRequest)

	tests := []struct {
		name           string
		body           string
		mockUser       *models.User
		mockToken      string
		mockErr        error
		skipMock       bool
		wantStatusCode int
		wantInBody     string
		wantCookie     bool
	}{
		{
			name: "success",
			body: `{"name":"Lena","email":"lena@example.com",
				"password":"pass1234","passwordConfirm":"pass1234"}`,
			mockUser:       &models.User{UID: "uid-1", Email: "lena@example.com", Role: models.RoleUser},
			mockToken:      "sometoken",
			wantStatusCode: http.StatusCreated,
			wantInBody:     `"status":"success"`,
			wantCookie:     true,
		},
		{
			name: "password confirm mismatch",
			body: `{"name":"Lena","email":"lena@example.com",
				"password":"pass1234","passwordConfirm":"different"}`,
			skipMock:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantInBody:     "field PasswordConfirm must match Password",
		},
		{
			name: "short password",
			body: `{"name":"Lena","email":"lena@example.com",
				"password":"short","passwordConfirm":"short"}`,
			skipMock:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantInBody:     "field Password is too short",
		},
		{
			name: "email already in use",
			body: `{"name":"Lena","email":"lena@example.com",
				"password":"pass1234","passwordConfirm":"pass1234"}`,
			mockErr:        emailTaken,
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "this email address is already in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			if !tt.skipMock {
				svc.On("Signup", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(tt.mockUser, tt.mockToken, tt.mockErr).Once()
			}

			handler := signup.New(newNoopLogger(), svc, time.Hour, false, config.EnvLocal)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/signup",
				bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantInBody)

			hasCookie := false
			for _, c := range rec.Result().Cookies() {
				if c.Name == session.CookieName && c.Value != "" {
					hasCookie = true
				}
			}
			assert.Equal(t, tt.wantCookie, hasCookie)
			svc.AssertExpectations(t)
		})
	}
}

func TestSignupHandler_AccountURLFromRequestHost(t *testing.T) {
	svc := new(AuthServiceMock)
	svc.On("Signup", mock.Anything, "Lena", "lena@example.com", "pass1234", "http://natours.test/me").
		Return(&models.User{UID: "uid-1"}, "tok", nil)

	handler := signup.New(newNoopLogger(), svc, time.Hour, false, config.EnvLocal)

	req := httptest.NewRequest(http.MethodPost, "http://natours.test/api/v1/users/signup",
		bytes.NewBufferString(`{"name":"Lena","email":"lena@example.com",
			"password":"pass1234","passwordConfirm":"pass1234"}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	svc.AssertExpectations(t)
}
