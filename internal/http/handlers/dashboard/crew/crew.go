// Package crew реализует HTTP-обработчик сводной панели члена экипажа.
package crew

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/middlewarectx"
	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	scheduleservice "github.com/aerosync-io/aerosync/internal/services/schedule"
)

// FlightItem — рейс члена экипажа в сводке.
type FlightItem struct {
	FlightNumber           string `json:"flight_number"`
	FlightDate             string `json:"flight_date"`
	DepartureTime          string `json:"departure_time"`
	ArrivalTime            string `json:"arrival_time"`
	DurationMinutes        int    `json:"duration_minutes"`
	AircraftRegistration   string `json:"aircraft_registration_number"`
	SourceAirportCode      string `json:"source_airport_code"`
	DestinationAirportCode string `json:"destination_airport_code"`
}

// NextFlight — ближайший рейс с временем до вылета.
type NextFlight struct {
	FlightItem
	MinutesToDeparture int `json:"minutes_to_departure"`
}

// Summary — сводка члена экипажа.
type Summary struct {
	UpcomingFlights     []FlightItem `json:"upcoming_flights"`
	TotalHoursCompleted float64      `json:"total_hours_completed"`
	NextFlight          *NextFlight  `json:"next_flight,omitempty"`
}

// Service описывает интерфейс бизнес-логики планирования.
type Service interface {
	CrewDashboard(ctx context.Context, crewEmail string, now time.Time) (*scheduleservice.CrewDashboard, error)
}

// Handler обрабатывает HTTP-запросы панели члена экипажа.
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
// @Summary Панель члена экипажа
// @Description Ближайшие рейсы, налёт по завершённым рейсам и следующий вылет.
// @Tags Crew
// @Produce  json
// @Success 200 {object} response.Response "Сводка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /crew/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.crew"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("missing user email in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeUnauthorized, "not authenticated"))
		return
	}

	dash, err := h.service.CrewDashboard(r.Context(), email, time.Now().UTC())
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to build dashboard"))
		return
	}

	upcoming := make([]FlightItem, 0, len(dash.UpcomingFlights))
	for _, f := range dash.UpcomingFlights {
		upcoming = append(upcoming, flightItem(f))
	}
	summary := Summary{
		UpcomingFlights:     upcoming,
		TotalHoursCompleted: dash.TotalHoursCompleted,
	}
	if dash.Next != nil {
		summary.NextFlight = &NextFlight{
			FlightItem:         flightItem(dash.Next.CrewFlightInfo),
			MinutesToDeparture: dash.Next.MinutesToDeparture,
		}
	}
	render.JSON(w, r, response.OKWithData(summary))
}

func flightItem(f scheduleservice.CrewFlightInfo) FlightItem {
	return FlightItem{
		FlightNumber:           f.FlightNumber,
		FlightDate:             f.Date.Format("2006-01-02"),
		DepartureTime:          f.DepartureTime,
		ArrivalTime:            f.ArrivalTime,
		DurationMinutes:        f.DurationMinutes,
		AircraftRegistration:   f.AircraftRegistration,
		SourceAirportCode:      f.SourceAirportCode,
		DestinationAirportCode: f.DestinationAirportCode,
	}
}
