// Package updatepassword реализует HTTP-обработчик смены пароля
// аутентифицированного пользователя. Требует подтверждения текущим паролем.
package updatepassword

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/maroungit7573/natours/internal/http/middlewarectx"
	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/http/session"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
)

// Request — структура входных данных для смены пароля.
type Request struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	UpdatePassword(ctx context.Context, uid, currentPassword, newPassword string) (*models.User, string, error)
}

// Handler обрабатывает HTTP-запросы смены пароля.
type Handler struct {
	log       *slog.Logger
	auth      Service
	validate  *validator.Validate
	cookieTTL time.Duration
	secure    bool
	env       string
}

func New(log *slog.Logger, auth Service, cookieTTL time.Duration, secure bool, env string) *Handler {
	return &Handler{
		log:       log,
		auth:      auth,
		validate:  validator.New(),
		cookieTTL: cookieTTL,
		secure:    secure,
		env:       env,
	}
}

// ServeHTTP godoc
// @Summary Смена пароля
// @Description Меняет пароль текущего пользователя после проверки старого и выдает свежий JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Текущий и новый пароли"
// @Success 200 {object} response.Envelope "Пароль обновлен"
// @Failure 401 {object} response.ErrorResponse "Неверный текущий пароль"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /users/updateMyPassword [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.updatepassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	current, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Fail("you are not logged in, please log in to get access"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Fail("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, token, err := h.auth.UpdatePassword(r.Context(), current.UID, req.PasswordCurrent, req.Password)
	if err != nil {
		log.Error("update password failed", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	log.Info("password updated", slog.String("email", user.Email))
	session.Set(w, token, h.cookieTTL, h.secure)
	render.JSON(w, r, response.SuccessWithToken(token, map[string]any{"user": user}))
}
