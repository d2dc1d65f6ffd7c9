// Package jwt реализует выпуск и проверку JWT токенов сессии AeroSync.
//
// CustomClaims расширяет стандартные claims JWT, добавляя числовой
// идентификатор пользователя и его роль (user_type).
//
// Методы GenerateToken и ParseToken реализуют создание и валидацию JWT токена с заданными claims.
package jwt

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Ошибки проверки токена. Клиенту они не различаются и схлопываются
// в общий 401, различие нужно бизнес-логике и логам.
var (
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed — строка не является JWT или отсутствуют обязательные claims.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenInvalid — подпись не сошлась или алгоритм подписи не HS256.
	ErrTokenInvalid = errors.New("token invalid")
)

// CustomClaims описывает данные сессии, хранящиеся в JWT.
type CustomClaims struct {
	UserID               int    `json:"user_id"`   // Числовой идентификатор в таблице роли
	UserType             string `json:"user_type"` // Роль: admin, crew, scheduler или engineer
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (Subject=email, IssuedAt, ExpiresAt, ID)
}

// Email возвращает email пользователя (claim sub).
func (c *CustomClaims) Email() string {
	return c.Subject
}
