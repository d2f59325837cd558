// Package models содержит доменные модели сервиса: пользователей,
// туры и отзывы. Структуры используются в бизнес‑логике и при работе
// с хранилищем.
package models

import "time"

// Роли пользователей. Порядок привилегий: user < guide < lead-guide < admin.
const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash и поля сброса пароля никогда не сериализуются наружу:
// json-тег "-" гарантирует это на уровне модели, а обычные выборки из
// хранилища дополнительно не запрашивают колонку password_hash.
type User struct {
	UID                  string     `json:"id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	PasswordHash         string     `json:"-"`
	Role                 string     `json:"role"`
	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   *string    `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
	Active               bool       `json:"-"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// PasswordChangedAfter сообщает, менялся ли пароль пользователя после
// момента t. Используется Session Guard: токен, выданный до смены пароля,
// считается устаревшим. Сравнение ведётся с точностью до секунды, потому
// что iat в JWT хранится в секундах.
func (u *User) PasswordChangedAfter(t time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Truncate(time.Second).After(t.Truncate(time.Second))
}
