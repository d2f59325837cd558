package logout_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maroungit7573/natours/internal/http/handlers/auth/logout"
	"github.com/maroungit7573/natours/internal/http/session"
)

func TestLogoutHandler(t *testing.T) {
	handler := logout.New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	serve := func(withCookie bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/logout", nil)
		if withCookie {
			req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sometoken"})
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	rec := serve(true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Equal(t, "loggedout", cookies[0].Value)

	// logout without a session behaves identically
	rec = serve(false)
	assert.Equal(t, http.StatusOK, rec.Code)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "loggedout", cookies[0].Value)
}
