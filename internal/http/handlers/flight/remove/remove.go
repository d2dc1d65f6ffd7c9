// Package remove реализует HTTP-обработчик удаления рейса.
//
// Вместе с рейсом удаляются его назначения экипажа.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики планирования.
type Service interface {
	RemoveFlight(ctx context.Context, flightNumber string, date time.Time) error
}

// Handler обрабатывает HTTP-запросы удаления рейса.
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
// @Summary Удаление рейса
// @Description Удаляет рейс вместе с назначениями экипажа.
// @Tags Scheduler
// @Produce  json
// @Param flight_number path string true "Номер рейса"
// @Param date path string true "Дата рейса (2006-01-02)"
// @Success 200 {object} response.Response "Рейс удалён"
// @Failure 404 {object} response.ErrorResponse "Рейс не найден"
// @Router /scheduler/flights/{flight_number}/{date} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flight.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	flightNumber := chi.URLParam(r, "flight_number")
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		log.Error("invalid flight date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidRequest, "invalid flight date"))
		return
	}

	if err := h.service.RemoveFlight(r.Context(), flightNumber, date); err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			log.Error("flight not found", slog.String("flight_number", flightNumber))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "flight not found"))
			return
		}
		log.Error("failed to delete flight", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to delete flight"))
		return
	}

	log.Info("flight deleted", slog.String("flight_number", flightNumber))
	render.JSON(w, r, response.OK("flight deleted"))
}
