// Package resetpassword реализует HTTP-обработчик установки нового пароля
// по одноразовому токену сброса из письма.
package resetpassword

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/http/session"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
)

// Request — структура входных данных для установки нового пароля.
type Request struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// Service описывает интерфейс бизнес-логики сброса пароля по токену.
type Service interface {
	ResetPassword(ctx context.Context, rawToken, newPassword string) (*models.User, string, error)
}

// Handler обрабатывает HTTP-запросы установки нового пароля.
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
// @Summary Установка нового пароля по токену сброса
// @Description Проверяет одноразовый токен сброса, устанавливает новый пароль и выдает JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param token path string true "Токен сброса из письма"
// @Param request body Request true "Новый пароль"
// @Success 200 {object} response.Envelope "Пароль обновлен"
// @Failure 400 {object} response.ErrorResponse "Токен недействителен или просрочен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/resetPassword/{token} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetpassword"

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

	rawToken := chi.URLParam(r, "token")

	user, token, err := h.auth.ResetPassword(r.Context(), rawToken, req.Password)
	if err != nil {
		log.Error("reset password failed", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	log.Info("password reset completed", slog.String("email", user.Email))
	session.Set(w, token, h.cookieTTL, h.secure)
	render.JSON(w, r, response.SuccessWithToken(token, map[string]any{"user": user}))
}
