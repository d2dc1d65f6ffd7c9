// Package read реализует HTTP-обработчик получения рейса по номеру и дате.
package read

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

// Item — рейс в ответе.
type Item struct {
	FlightNumber         string `json:"flight_number"`
	FlightDate           string `json:"flight_date"`
	RouteID              int    `json:"route_id"`
	DepartureTime        string `json:"departure_time"`
	ArrivalTime          string `json:"arrival_time"`
	AircraftRegistration string `json:"aircraft_registration_number"`
}

// Service описывает интерфейс бизнес-логики планирования.
type Service interface {
	GetFlight(ctx context.Context, flightNumber string, date time.Time) (*models.Flight, error)
}

// Handler обрабатывает HTTP-запросы получения рейса.
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
// @Summary Получение рейса
// @Tags Scheduler
// @Produce  json
// @Param flight_number path string true "Номер рейса"
// @Param date path string true "Дата рейса (2006-01-02)"
// @Success 200 {object} response.Response "Рейс"
// @Failure 404 {object} response.ErrorResponse "Рейс не найден"
// @Router /scheduler/flights/{flight_number}/{date} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flight.read"

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

	flight, err := h.service.GetFlight(r.Context(), flightNumber, date)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			log.Error("flight not found", slog.String("flight_number", flightNumber))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "flight not found"))
			return
		}
		log.Error("failed to get flight", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to get flight"))
		return
	}

	render.JSON(w, r, response.OKWithData(Item{
		FlightNumber:         flight.FlightNumber,
		FlightDate:           flight.Date.Format("2006-01-02"),
		RouteID:              flight.RouteID,
		DepartureTime:        flight.DepartureTime,
		ArrivalTime:          flight.ArrivalTime,
		AircraftRegistration: flight.AircraftRegistration,
	}))
}
