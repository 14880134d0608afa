// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// CustomClaims расширяет стандартные claims JWT, добавляя uid пользователя,
// email и флаги ролей (продавец, администратор).
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserUID              string `json:"uid"`            // Уникальный идентификатор пользователя
	Email                string `json:"email"`          // Электронная почта
	IsSalesperson        bool   `json:"is_salesperson"` // Продавец-партнёр
	IsAdmin              bool   `json:"is_admin"`       // Администратор платформы
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// GenerateToken создает JWT токен с заданными uid, email и флагами ролей,
// подписывая его секретным ключом.
//
// Время жизни токена определяется полем tokenTTL; по claim exp клиент
// выставляет свой таймер сброса сессии.
func (j *MakerImpl) GenerateToken(uid, email string, isSalesperson, isAdmin bool) (string, error) {
	claims := CustomClaims{
		UserUID:       uid,
		Email:         email,
		IsSalesperson: isSalesperson,
		IsAdmin:       isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и валидность,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
