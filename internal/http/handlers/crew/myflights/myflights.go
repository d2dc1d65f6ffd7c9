// Package myflights реализует HTTP-обработчик расписания члена экипажа.
package myflights

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/middlewarectx"
	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
)

// Item — рейс в расписании члена экипажа.
type Item struct {
	FlightNumber           string `json:"flight_number"`
	FlightDate             string `json:"flight_date"`
	DepartureTime          string `json:"departure_time"`
	ArrivalTime            string `json:"arrival_time"`
	AircraftRegistration   string `json:"aircraft_registration_number"`
	SourceAirportCode      string `json:"source_airport_code"`
	DestinationAirportCode string `json:"destination_airport_code"`
}

// Service описывает интерфейс бизнес-логики планирования.
type Service interface {
	MyFlights(ctx context.Context, crewEmail string) ([]*models.CrewFlight, error)
}

// Handler обрабатывает HTTP-запросы расписания экипажа.
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
// @Summary Рейсы текущего члена экипажа
// @Description Email берётся из токена аутентифицированного пользователя.
// @Tags Crew
// @Produce  json
// @Success 200 {object} response.Response "Список рейсов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /crew/my-flights [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crew.myflights"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeUnauthorized, "not authenticated"))
		return
	}

	flights, err := h.service.MyFlights(r.Context(), email)
	if err != nil {
		log.Error("failed to list crew flights", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to list flights"))
		return
	}

	items := make([]Item, 0, len(flights))
	for _, f := range flights {
		items = append(items, Item{
			FlightNumber:           f.FlightNumber,
			FlightDate:             f.Date.Format("2006-01-02"),
			DepartureTime:          f.DepartureTime,
			ArrivalTime:            f.ArrivalTime,
			AircraftRegistration:   f.AircraftRegistration,
			SourceAirportCode:      f.SourceAirportCode,
			DestinationAirportCode: f.DestinationAirportCode,
		})
	}
	render.JSON(w, r, response.OKWithData(items))
}
