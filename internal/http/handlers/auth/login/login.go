// Package login реализует HTTP-обработчик для запросов аутентификации пользователей.
//
// В нём определяется структура Request для входных данных, выполняется декодирование JSON,
// проверка и валидация полей, а также делегирование операции входа сервису аутентификации.
// При успешной аутентификации JWT устанавливается в HttpOnly cookie,
// в теле ответа возвращаются данные пользователя без хэша пароля.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/aerosync-io/aerosync/internal/config"
	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
	authservice "github.com/aerosync-io/aerosync/internal/services/auth"
)

// Request — структура входных данных для авторизации.
type Request struct {
	UserType string `json:"user_type" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserInfo — данные пользователя в успешном ответе.
type UserInfo struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

// LoginResponse — тело успешного ответа.
type LoginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	User    UserInfo `json:"user"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, userType, email, password string) (string, *models.User, error)
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log         *slog.Logger        // Логгер для записи операций и ошибок
	authService Service             // Сервис аутентификации
	validate    *validator.Validate // Валидатор для проверки входных данных
	cookie      config.AuthCookie   // Настройки сессионной cookie
	tokenTTL    time.Duration       // Время жизни токена и cookie
}

// New создает новый экземпляр Handler с указанными логгером и сервисом аутентификации.
//
// Инициализирует валидатор для проверки структур.
func New(log *slog.Logger, authService Service, cookie config.AuthCookie, tokenTTL time.Duration) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
		validate:    validator.New(),
		cookie:      cookie,
		tokenTTL:    tokenTTL,
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по роли, email и паролю. Устанавливает JWT в cookie.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} LoginResponse "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или роль"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	token, user, err := h.authService.Login(r.Context(), req.UserType, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnknownUserType):
			log.Error("unknown user type", slog.String("user_type", req.UserType))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidUserType, "unknown user type"))
		case errors.Is(err, authservice.ErrInvalidCredentials):
			// Неверный пароль и несуществующий email дают один и тот же ответ.
			log.Error("authentication failed", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(response.CodeAuthenticationFailed, "invalid email or password"))
		default:
			log.Error("login failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.CodeInternalError, "internal server error"))
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("login success", slog.String("email", user.Email), slog.String("user_type", string(user.UserType)))
	render.JSON(w, r, LoginResponse{
		Success: true,
		Message: "Login successful",
		User: UserInfo{
			ID:       user.ID,
			Email:    user.Email,
			UserType: string(user.UserType),
		},
	})
}
