package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aerosync-io/aerosync/internal/models"
)

// roleTables отображает роль на таблицу учётных записей.
var roleTables = map[models.UserType]string{
	models.UserTypeAdmin:     "admins",
	models.UserTypeCrew:      "crew",
	models.UserTypeScheduler: "schedulers",
	models.UserTypeEngineer:  "engineers",
}

// GetUserByEmail возвращает учётную запись роли userType по email.
func (s *Storage) GetUserByEmail(ctx context.Context, userType models.UserType, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	table, ok := roleTables[userType]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUnknownUserType)
	}
	pilotColumn := "FALSE"
	if userType == models.UserTypeCrew {
		pilotColumn = "is_pilot"
	}

	query := fmt.Sprintf(`SELECT id, email, name, COALESCE(phone, ''), password_hash, %s, last_login
			  FROM %s
			  WHERE email = $1`, pilotColumn, table)

	u := &models.User{UserType: userType}
	var lastLogin sql.NullTime
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name,
		&u.Phone, &u.PasswordHash, &u.IsPilot, &lastLogin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

// UpdateLastLogin фиксирует время последнего входа пользователя.
func (s *Storage) UpdateLastLogin(ctx context.Context, userType models.UserType, email string, at time.Time) error {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	table, ok := roleTables[userType]
	if !ok {
		return fmt.Errorf("%s: %w", op, models.ErrUnknownUserType)
	}
	query := fmt.Sprintf(`UPDATE %s SET last_login = $1 WHERE email = $2`, table)
	if _, err := s.DB.ExecContext(ctx, query, at, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateUser сохраняет новую учётную запись роли и возвращает её ID.
// Повтор email внутри таблицы роли отображается в ErrAlreadyExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	table, ok := roleTables[user.UserType]
	if !ok {
		return 0, fmt.Errorf("%s: %w", op, models.ErrUnknownUserType)
	}

	var newID int
	if user.UserType == models.UserTypeCrew {
		query := `INSERT INTO crew (email, name, phone, password_hash, is_pilot)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
		if err := s.DB.QueryRowContext(ctx, query,
			user.Email, user.Name, user.Phone, user.PasswordHash, user.IsPilot).Scan(&newID); err != nil {
			if isUniqueViolation(err) {
				return 0, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
			}
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		return newID, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (email, name, phone, password_hash)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`, table)
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, user.Phone, user.PasswordHash).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}
