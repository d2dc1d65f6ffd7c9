// Package remove реализует HTTP-обработчик удаления воздушного судна.
//
// Удаление защищено проверкой ссылочной целостности: если на судно
// ссылаются рейсы, назначения экипажа или работы обслуживания,
// запрос завершается 409 с именем непустой категории.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики парка.
type Service interface {
	RemoveAircraft(ctx context.Context, registration string) error
}

// Handler обрабатывает HTTP-запросы удаления судна.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление воздушного судна
// @Description Удаляет судно, если на него не ссылаются рейсы, назначения экипажа и работы обслуживания.
// @Tags Admin
// @Produce  json
// @Param registration_number path string true "Регистрационный номер"
// @Success 200 {object} response.Response "Судно удалено"
// @Failure 404 {object} response.ErrorResponse "Судно не найдено"
// @Failure 409 {object} response.ErrorResponse "Есть зависимые записи"
// @Router /admin/aircraft/{registration_number} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.aircraft.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	registration := chi.URLParam(r, "registration_number")

	err := h.service.RemoveAircraft(r.Context(), registration)
	if err != nil {
		var depErr *repository.DependencyError
		switch {
		case errors.Is(err, repository.ErrAircraftNotFound):
			log.Error("aircraft not found", slog.String("registration", registration))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "aircraft not found"))
		case errors.As(err, &depErr):
			log.Error("aircraft has dependent records",
				slog.String("registration", registration),
				slog.String("category", depErr.Category),
				slog.Int("count", depErr.Count))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Response{
				Success: false,
				Error:   response.CodeDeleteConflict,
				Message: "aircraft has dependent records in " + depErr.Category,
				Data: map[string]any{
					"dependency": depErr.Category,
					"count":      depErr.Count,
				},
			})
		default:
			log.Error("failed to delete aircraft", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.CodeInternalError, "failed to delete aircraft"))
		}
		return
	}

	log.Info("aircraft deleted", slog.String("registration", registration))
	render.JSON(w, r, response.OK("aircraft deleted"))
}
