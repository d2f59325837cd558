// Package middlewarectx содержит HTTP middleware для проверки сессионных
// JWT токенов и ограничения доступа по ролям.
//
// Protect извлекает токен из заголовка Authorization или из сессионной
// cookie, разрешает его в пользователя и кладёт пользователя в контекст
// запроса для дальнейшего использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/http/session"
	"github.com/maroungit7573/natours/internal/lib/apperr"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// CurrentUser — ключ для аутентифицированного пользователя в контексте.
const CurrentUser Key = "currentUser"

// SessionResolver описывает интерфейс сервиса для разрешения сессионного токена.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.User, error)
}

// extractToken достаёт токен из заголовка Authorization (Bearer) или,
// если заголовка нет, из сессионной cookie.
func extractToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		return token, token != ""
	}
	return session.Token(r)
}

// UserFromContext возвращает пользователя, положенного в контекст middleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(CurrentUser).(*models.User)
	return user, ok && user != nil
}

// Protect возвращает HTTP middleware, который требует валидный сессионный токен.
//
// Если токен валиден, добавляет пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func Protect(resolver SessionResolver, log *slog.Logger, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Protect"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := extractToken(r)
			if !ok {
				log.Error("missing session token")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Fail("you are not logged in, please log in to get access"))
				return
			}

			user, err := resolver.ResolveSession(r.Context(), token)
			if err != nil {
				log.Error("failed to resolve session", sl.Err(err))
				response.RenderError(w, r, env, err)
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MaybeAuth возвращает middleware, который добавляет пользователя в контекст,
// если запрос несёт валидный токен, и молча пропускает запрос дальше в любом
// другом случае. Ошибкой не завершается никогда.
func MaybeAuth(resolver SessionResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := resolver.ResolveSession(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles возвращает middleware, пропускающий только пользователей
// с одной из перечисленных ролей. Ставится после Protect.
func RequireRoles(log *slog.Logger, env string, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Fail("you are not logged in, please log in to get access"))
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Error("access denied", slog.String("role", user.Role))
			response.RenderError(w, r, env, apperr.New(apperr.KindAuthorization,
				"you do not have permission to perform this action"))
		})
	}
}
