package password

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NewResetToken генерирует одноразовый токен сброса пароля.
// Пользователю уходит raw — 32 случайных байта в hex, в базе хранится
// только его sha256. Для токена достаточно быстрого хэша: энтропия
// самого значения защищает от перебора, а сервер должен уметь дёшево
// искать запись по хэшу.
func NewResetToken() (raw, hash string, err error) {
	const op = "password.NewResetToken"
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	raw = hex.EncodeToString(buf)
	return raw, HashResetToken(raw), nil
}

// HashResetToken возвращает sha256-хэш токена сброса в hex.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
