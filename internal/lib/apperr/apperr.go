// Package apperr определяет таксономию ошибок сервиса.
//
// Каждая ошибка несёт вид (Kind), безопасное для пользователя сообщение
// и, опционально, обёрнутую причину. Вид задаёт HTTP-статус по умолчанию;
// отдельные потоки переопределяют статус явно (например, неверные учётные
// данные при логине отдаются как 400). Все виды, кроме KindInternal,
// являются операционными: их сообщение можно показывать пользователю.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind — вид ошибки из таксономии сервиса.
type Kind int

const (
	// KindInternal — неклассифицированный внутренний сбой.
	KindInternal Kind = iota
	// KindValidation — некорректная форма входных данных.
	KindValidation
	// KindAuthentication — неверные учётные данные, токен или устаревшая сессия.
	KindAuthentication
	// KindAuthorization — роль пользователя не допущена к операции.
	KindAuthorization
	// KindNotFound — запрошенная сущность не найдена.
	KindNotFound
	// KindConflict — нарушение уникальности (дубликат email и т.п.).
	KindConflict
	// KindDependency — сбой внешней зависимости (отправка письма и т.п.).
	KindDependency
)

// Error — ошибка с видом и безопасным для пользователя сообщением.
type Error struct {
	Kind Kind
	Msg  string
	Code int // явный HTTP-статус; 0 — статус по виду
	Err  error
}

// New создает ошибку данного вида с сообщением для пользователя.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap создает ошибку данного вида, оборачивая причину.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// WithStatus явно задаёт HTTP-статус ответа вместо статуса по виду.
func (e *Error) WithStatus(code int) *Error {
	e.Code = code
	return e
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status возвращает HTTP-статус ответа: явный Code либо статус по виду.
func (e *Error) Status() int {
	if e.Code != 0 {
		return e.Code
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Operational сообщает, безопасно ли показывать сообщение пользователю.
func (e *Error) Operational() bool {
	return e.Kind != KindInternal
}

// From приводит произвольную ошибку к *Error. Неклассифицированные
// ошибки получают вид KindInternal с общим сообщением; исходная ошибка
// остаётся в цепочке для диагностики.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: KindInternal, Msg: "something went wrong", Err: err}
}
