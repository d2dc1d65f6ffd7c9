// Package list реализует HTTP-обработчик списка рейсов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
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
	ListFlights(ctx context.Context) ([]*models.Flight, error)
}

// Handler обрабатывает HTTP-запросы списка рейсов.
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
// @Summary Список рейсов
// @Tags Scheduler
// @Produce  json
// @Success 200 {object} response.Response "Список рейсов"
// @Router /scheduler/flights [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flight.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	flights, err := h.service.ListFlights(r.Context())
	if err != nil {
		log.Error("failed to list flights", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to list flights"))
		return
	}

	items := make([]Item, 0, len(flights))
	for _, f := range flights {
		items = append(items, Item{
			FlightNumber:         f.FlightNumber,
			FlightDate:           f.Date.Format("2006-01-02"),
			RouteID:              f.RouteID,
			DepartureTime:        f.DepartureTime,
			ArrivalTime:          f.ArrivalTime,
			AircraftRegistration: f.AircraftRegistration,
		})
	}
	render.JSON(w, r, response.OKWithData(items))
}
