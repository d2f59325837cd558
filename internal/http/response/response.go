// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/maroungit7573/natours/internal/config"
	"github.com/maroungit7573/natours/internal/lib/apperr"
)

// Envelope описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("success", "fail" или "error").
// Поле Token — сессионный токен (опционально, в ответах аутентификации).
// Поле Data — данные ответа (опционально, при успехе).
// Поле Message — текст ошибки (опционально, при неуспехе).
type Envelope struct {
	Status  string `json:"status"`
	Token   string `json:"token,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status  string `json:"status" example:"fail"`
	Message string `json:"message" example:"invalid request body"`
}

const (
	// StatusSuccess — значение статуса для успешного ответа.
	StatusSuccess = "success"
	// StatusFail — значение статуса для клиентской ошибки (4xx).
	StatusFail = "fail"
	// StatusError — значение статуса для серверного сбоя (5xx).
	StatusError = "error"
)

// Success возвращает успешный Envelope с переданными данными.
func Success(data any) Envelope {
	return Envelope{
		Status: StatusSuccess,
		Data:   data,
	}
}

// SuccessWithToken возвращает успешный Envelope с сессионным токеном.
func SuccessWithToken(token string, data any) Envelope {
	return Envelope{
		Status: StatusSuccess,
		Token:  token,
		Data:   data,
	}
}

// Fail возвращает Envelope клиентской ошибки с переданным сообщением.
func Fail(msg string) Envelope {
	return Envelope{
		Status:  StatusFail,
		Message: msg,
	}
}

// Error возвращает Envelope серверного сбоя с переданным сообщением.
func Error(msg string) Envelope {
	return Envelope{
		Status:  StatusError,
		Message: msg,
	}
}

// RenderError записывает ошибку в ответ. HTTP-статус и текст берутся из
// классификации ошибки: клиентские ошибки получают статус "fail" и свое
// сообщение, всё неклассифицированное — 500 со статусом "error" и
// обобщённым текстом. Вне продакшн-окружения к сообщению добавляется
// завёрнутая причина, чтобы упростить отладку; в проде внутренние
// детали в ответ не попадают.
func RenderError(w http.ResponseWriter, r *http.Request, env string, err error) {
	appErr := apperr.From(err)
	msg := appErr.Msg
	if env != config.EnvProd && appErr.Err != nil {
		msg = fmt.Sprintf("%s: %v", appErr.Msg, appErr.Err)
	}
	render.Status(r, appErr.Status())
	if appErr.Status() >= http.StatusInternalServerError {
		render.JSON(w, r, Error(msg))
		return
	}
	render.JSON(w, r, Fail(msg))
}

// ValidationError формирует Envelope со статусом fail на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Envelope {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "eqfield":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must match %s", err.Field(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Fail(strings.Join(errsMsgs, ", "))
}
