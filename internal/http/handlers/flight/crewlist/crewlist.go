// Package crewlist реализует HTTP-обработчик списка экипажа рейса.
package crewlist

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
	"github.com/aerosync-io/aerosync/internal/models"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Item — член экипажа в ответе.
type Item struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	IsPilot bool   `json:"is_pilot"`
}

// Service описывает интерфейс бизнес-логики планирования.
type Service interface {
	FlightCrew(ctx context.Context, flightNumber string, date time.Time) ([]*models.CrewMember, error)
}

// Handler обрабатывает HTTP-запросы списка экипажа рейса.
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
// @Summary Экипаж рейса
// @Tags Scheduler
// @Produce  json
// @Param flight_number path string true "Номер рейса"
// @Param date path string true "Дата рейса (2006-01-02)"
// @Success 200 {object} response.Response "Список членов экипажа"
// @Failure 404 {object} response.ErrorResponse "Рейс не найден"
// @Router /scheduler/flights/{flight_number}/{date}/crew [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flight.crewlist"

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

	crew, err := h.service.FlightCrew(r.Context(), flightNumber, date)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			log.Error("flight not found", slog.String("flight_number", flightNumber))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "flight not found"))
			return
		}
		log.Error("failed to list flight crew", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to list flight crew"))
		return
	}

	items := make([]Item, 0, len(crew))
	for _, m := range crew {
		items = append(items, Item{
			Email:   m.Email,
			Name:    m.Name,
			Phone:   m.Phone,
			IsPilot: m.IsPilot,
		})
	}
	render.JSON(w, r, response.OKWithData(items))
}
