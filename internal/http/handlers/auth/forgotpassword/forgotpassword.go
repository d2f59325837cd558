// Package forgotpassword реализует HTTP-обработчик запроса сброса пароля.
//
// Обработчик генерирует одноразовый токен сброса и отправляет пользователю
// письмо со ссылкой на подтверждение. В ответе токен не возвращается.
package forgotpassword

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/lib/sl"
)

// Request — структура входных данных для запроса сброса пароля.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики сброса пароля.
type Service interface {
	ForgotPassword(ctx context.Context, email, resetURLBase string) error
}

// Handler обрабатывает HTTP-запросы на сброс пароля.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
	env      string
}

func New(log *slog.Logger, auth Service, env string) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
		env:      env,
	}
}

// ServeHTTP godoc
// @Summary Запрос сброса пароля
// @Description Отправляет письмо со ссылкой для сброса пароля на указанный email.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Email пользователя"
// @Success 200 {object} response.Envelope "Письмо отправлено"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка отправки письма"
// @Router /users/forgotPassword [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgotpassword"

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
	resetURLBase := fmt.Sprintf("%s://%s/api/v1/users/resetPassword", scheme, r.Host)

	if err := h.auth.ForgotPassword(r.Context(), req.Email, resetURLBase); err != nil {
		log.Error("forgot password failed", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	log.Info("reset token sent to email")
	render.JSON(w, r, response.Envelope{
		Status:  response.StatusSuccess,
		Message: "Token sent to email!",
	})
}
