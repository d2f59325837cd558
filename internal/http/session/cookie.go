// Package session управляет сессионной cookie с JWT токеном.
package session

import (
	"net/http"
	"time"
)

// CookieName — имя cookie с сессионным токеном.
const CookieName = "jwt"

// logoutValue записывается вместо токена при выходе: короткоживущая
// замена перекрывает старую cookie в браузере.
const logoutValue = "loggedout"

// Set записывает сессионный токен в httpOnly cookie.
func Set(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear заменяет сессионную cookie заглушкой со сроком жизни 10 секунд.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    logoutValue,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
	})
}

// Token возвращает сессионный токен из cookie запроса.
// Заглушка выхода считается отсутствием токена.
func Token(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" || c.Value == logoutValue {
		return "", false
	}
	return c.Value, true
}
