package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ошибки проверки токена. Истёкший токен отличается от испорченного,
// чтобы слой обработки ошибок мог показать пользователю разные сообщения.
var (
	// ErrTokenExpired — подпись корректна, но срок жизни токена истёк.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid — токен испорчен, подделан или подписан другим ключом.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Issue выпускает JWT с uid пользователя, подписывая его секретным ключом.
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) Issue(userUID string) (string, error) {
	claims := Claims{
		UserUID: userUID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// Parse разбирает JWT, проверяет подпись и срок жизни и возвращает Claims.
// Истёкший токен возвращает ErrTokenExpired, любой другой дефект — ErrTokenInvalid.
func (j *MakerImpl) Parse(tokenStr string) (*Claims, error) {
	const op = "jwt.Parse"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}
	return claims, nil
}
