// Package signup реализует HTTP-обработчик регистрации пользователей.
//
// В нём определяется структура Request для входных данных, выполняется декодирование JSON,
// проверка и валидация полей, а также делегирование регистрации сервису аутентификации.
// При успешной регистрации возвращается JSON с JWT и устанавливается сессионная cookie.
package signup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/http/session"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
)

// Request — структура входных данных для регистрации.
//
// PasswordConfirm должен совпадать с Password.
type Request struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Signup(ctx context.Context, name, email, password, accountURL string) (*models.User, string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log       *slog.Logger
	auth      Service
	validate  *validator.Validate
	cookieTTL time.Duration
	secure    bool
	env       string
}

// New создает новый экземпляр Handler.
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
// @Summary Регистрация пользователя
// @Description Создает нового пользователя, отправляет приветственное письмо и выдает JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} response.Envelope "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	accountURL := fmt.Sprintf("%s://%s/me", scheme, r.Host)

	user, token, err := h.auth.Signup(r.Context(), req.Name, req.Email, req.Password, accountURL)
	if err != nil {
		log.Error("signup failed", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	log.Info("user registered", slog.String("email", user.Email))
	session.Set(w, token, h.cookieTTL, h.secure)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.SuccessWithToken(token, map[string]any{"user": user}))
}
