// Package models содержит доменные модели системы AeroSync:
// учётные записи по ролям, парк воздушных судов, рейсы и работы
// технического обслуживания. Структуры используются в бизнес‑логике
// и при работе с хранилищем.
package models

import (
	"errors"
	"time"
)

// UserType — роль пользователя, определяющая доступ к эндпоинтам.
type UserType string

// Фиксированный набор ролей. Пилоты и бортпроводники объединены
// в роль crew, признак пилота хранится отдельным полем.
const (
	UserTypeAdmin     UserType = "admin"
	UserTypeCrew      UserType = "crew"
	UserTypeScheduler UserType = "scheduler"
	UserTypeEngineer  UserType = "engineer"
)

// ErrUnknownUserType возвращается, если роль не входит в фиксированный набор.
var ErrUnknownUserType = errors.New("unknown user type")

// ParseUserType проверяет строку роли и возвращает UserType.
func ParseUserType(s string) (UserType, error) {
	switch UserType(s) {
	case UserTypeAdmin, UserTypeCrew, UserTypeScheduler, UserTypeEngineer:
		return UserType(s), nil
	default:
		return "", ErrUnknownUserType
	}
}

// User представляет учётную запись одной из ролей системы.
type User struct {
	ID           int        // Числовой идентификатор в таблице роли
	Email        string     // Электронная почта (уникальна внутри роли)
	Name         string     // Имя пользователя
	Phone        string     // Телефон
	PasswordHash string     // Хэш пароля
	UserType     UserType   // Роль
	IsPilot      bool       // Признак пилота, заполняется только для crew
	LastLogin    *time.Time // Время последнего входа
}

// Identity — разрешённая из токена личность запроса.
type Identity struct {
	UserID   int
	Email    string
	UserType UserType
}
