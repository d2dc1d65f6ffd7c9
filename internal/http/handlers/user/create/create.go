// Package create реализует HTTP-обработчик административного заведения
// учётных записей.
//
// Новая учётная запись получает пароль по умолчанию; он возвращается
// в ответе, чтобы администратор передал его пользователю.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
	authservice "github.com/aerosync-io/aerosync/internal/services/auth"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Request — структура входных данных для заведения пользователя.
// Признак пилота обязателен для роли crew и запрещён для остальных.
type Request struct {
	UserType string `json:"user_type" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty"`
	IsPilot  *bool  `json:"is_pilot"`
}

// Created — данные заведённой учётной записи в ответе.
type Created struct {
	ID              int    `json:"id"`
	Email           string `json:"email"`
	UserType        string `json:"user_type"`
	DefaultPassword string `json:"default_password"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	ProvisionUser(ctx context.Context, userType, email, name, phone string, isPilot *bool) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы заведения пользователей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Заведение учётной записи
// @Description Создаёт пользователя указанной роли с паролем по умолчанию.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные пользователя"
// @Success 201 {object} response.Response "Учётная запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректная роль или признак пилота"
// @Failure 409 {object} response.ErrorResponse "Email уже занят в этой роли"
// @Router /admin/users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidRequest, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.ProvisionUser(r.Context(), req.UserType, req.Email, req.Name, req.Phone, req.IsPilot)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnknownUserType):
			log.Error("unknown user type", slog.String("user_type", req.UserType))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidUserType, "unknown user type"))
		case errors.Is(err, authservice.ErrPilotFlagRequired):
			log.Error("is_pilot missing for crew user")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "is_pilot is required for crew users"))
		case errors.Is(err, authservice.ErrPilotFlagNotAllowed):
			log.Error("is_pilot set for non-crew user", slog.String("user_type", req.UserType))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "is_pilot is only valid for crew users"))
		case errors.Is(err, repository.ErrAlreadyExists):
			log.Error("user already exists", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(response.CodeAlreadyExists, "user with this email already exists"))
		default:
			log.Error("failed to create user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.CodeInternalError, "failed to create user"))
		}
		return
	}

	log.Info("user created", slog.String("email", user.Email), slog.String("user_type", string(user.UserType)))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(Created{
		ID:              user.ID,
		Email:           user.Email,
		UserType:        string(user.UserType),
		DefaultPassword: authservice.DefaultPassword,
	}))
}
