// Package auth содержит логику бизнес-уровня для аутентификации
// пользователей по ролям и проверки JWT.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aerosync-io/aerosync/internal/lib/jwt"
	"github.com/aerosync-io/aerosync/internal/lib/password"
	"github.com/aerosync-io/aerosync/internal/models"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// ErrInvalidCredentials возвращается и при неизвестном email, и при
// неверном пароле: для клиента эти случаи неразличимы, чтобы не давать
// возможность перебора учётных записей.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Ошибки согласованности признака пилота при заведении пользователя.
var (
	ErrPilotFlagRequired   = errors.New("is_pilot is required for crew users")
	ErrPilotFlagNotAllowed = errors.New("is_pilot is only valid for crew users")
)

// DefaultPassword выдаётся каждой новой учётной записи; пользователь
// меняет его после первого входа.
const DefaultPassword = "password123"

// UserRepository описывает контракт для работы с учётными записями в базе данных.
type UserRepository interface {
	// GetUserByEmail возвращает учётную запись роли по email.
	GetUserByEmail(ctx context.Context, userType models.UserType, email string) (*models.User, error)

	// UpdateLastLogin фиксирует время последнего входа.
	UpdateLastLogin(ctx context.Context, userType models.UserType, email string, at time.Time) error

	// CreateUser сохраняет новую учётную запись роли и возвращает её ID.
	CreateUser(ctx context.Context, user models.User) (int, error)
}

// AuthService отвечает за вход пользователей и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет роль и пароль пользователя и выпускает JWT.
//
// Роль проверяется до обращения к хранилищу: неизвестный user_type
// завершает вход сразу с models.ErrUnknownUserType.
func (s *AuthService) Login(ctx context.Context, userTypeStr, email, rawPassword string) (string, *models.User, error) {
	userType, err := models.ParseUserType(userTypeStr)
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, userType, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, userType, user.Email, time.Now().UTC()); err != nil {
		return "", nil, err
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, string(userType))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ProvisionUser заводит учётную запись роли с паролем по умолчанию.
//
// Признак пилота обязателен для роли crew и запрещён для остальных ролей.
// Хэш пароля наружу не отдаётся: вызывающий показывает DefaultPassword.
func (s *AuthService) ProvisionUser(ctx context.Context, userTypeStr, email, name, phone string, isPilot *bool) (*models.User, error) {
	userType, err := models.ParseUserType(userTypeStr)
	if err != nil {
		return nil, err
	}
	if userType == models.UserTypeCrew && isPilot == nil {
		return nil, ErrPilotFlagRequired
	}
	if userType != models.UserTypeCrew && isPilot != nil {
		return nil, ErrPilotFlagNotAllowed
	}

	hash, err := password.GetHash(DefaultPassword)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		UserType:     userType,
	}
	if isPilot != nil {
		user.IsPilot = *isPilot
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	user.PasswordHash = ""
	return &user, nil
}

// ValidateToken проверяет JWT и возвращает личность запроса.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.Identity, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	userType, err := models.ParseUserType(claims.UserType)
	if err != nil {
		return nil, fmt.Errorf("auth.ValidateToken: %w", jwt.ErrTokenMalformed)
	}
	return &models.Identity{
		UserID:   claims.UserID,
		Email:    claims.Email(),
		UserType: userType,
	}, nil
}
