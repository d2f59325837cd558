// Package jwt реализует выпуск и проверку сессионных JWT токенов.
//
// Maker описывает интерфейс для выпуска и разбора токена, привязанного
// к идентификатору пользователя. MakerImpl — конкретная реализация
// с секретным ключом и сроком жизни токена.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает данные, хранящиеся в сессионном токене.
// Кроме стандартных claims (iat, exp) токен несёт только uid пользователя.
type Claims struct {
	UserUID              string `json:"uid"` // Уникальный идентификатор пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс для выпуска и разбора сессионных токенов.
type Maker interface {
	// Issue выпускает подписанный токен для пользователя с данным uid.
	Issue(userUID string) (string, error)
	// Parse проверяет подпись и срок жизни токена и возвращает Claims.
	Parse(tokenStr string) (*Claims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
