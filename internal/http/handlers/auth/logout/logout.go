// Package logout реализует HTTP-обработчик выхода из системы.
//
// Выход сводится к очистке сессионной cookie. Сам токен остаётся
// криптографически валидным до истечения exp: серверного списка
// отозванных токенов нет.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/config"
	"github.com/aerosync-io/aerosync/internal/http/response"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log    *slog.Logger
	cookie config.AuthCookie
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, cookie config.AuthCookie) *Handler {
	return &Handler{
		log:    log,
		cookie: cookie,
	}
}

// ServeHTTP godoc
// @Summary Выход из системы
// @Description Очищает сессионную cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Успешный выход"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("logout success")
	render.JSON(w, r, response.OK("Logout successful"))
}
