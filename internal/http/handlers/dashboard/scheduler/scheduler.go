// Package scheduler реализует HTTP-обработчик сводной панели диспетчера.
package scheduler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	scheduleservice "github.com/aerosync-io/aerosync/internal/services/schedule"
)

// FlightItem — недавно поставленный рейс в сводке.
type FlightItem struct {
	FlightNumber           string `json:"flight_number"`
	FlightDate             string `json:"flight_date"`
	RouteID                int    `json:"route_id"`
	SourceAirportCode      string `json:"source_airport_code"`
	DestinationAirportCode string `json:"destination_airport_code"`
	ApprovedCapacity       int    `json:"approved_capacity"`
	DepartureTime          string `json:"departure_time"`
	ArrivalTime            string `json:"arrival_time"`
	AircraftRegistration   string `json:"aircraft_registration_number"`
}

// Stats — агрегаты сводки диспетчера.
type Stats struct {
	FlightsInAir          int     `json:"flights_in_air"`
	WeeklyFlights         int     `json:"weekly_flights"`
	UtilizationRate       float64 `json:"utilization_rate"`
	AircraftOnGround      int     `json:"aircraft_on_ground"`
	AircraftInMaintenance int     `json:"aircraft_in_maintenance"`
}

// Summary — сводка диспетчера.
type Summary struct {
	RecentFlights []FlightItem `json:"recent_flights"`
	Stats         Stats        `json:"stats"`
}

// Service описывает интерфейс бизнес-логики планирования.
type Service interface {
	Dashboard(ctx context.Context, now time.Time) (*scheduleservice.Dashboard, error)
}

// Handler обрабатывает HTTP-запросы панели диспетчера.
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
// @Summary Панель диспетчера
// @Description Недавние рейсы и агрегаты: рейсы в воздухе, рейсы недели, загрузка парка.
// @Tags Scheduler
// @Produce  json
// @Success 200 {object} response.Response "Сводка"
// @Router /scheduler/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.scheduler"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	dash, err := h.service.Dashboard(r.Context(), time.Now().UTC())
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to build dashboard"))
		return
	}

	flights := make([]FlightItem, 0, len(dash.RecentFlights))
	for _, f := range dash.RecentFlights {
		flights = append(flights, FlightItem{
			FlightNumber:           f.FlightNumber,
			FlightDate:             f.Date.Format("2006-01-02"),
			RouteID:                f.RouteID,
			SourceAirportCode:      f.SourceAirportCode,
			DestinationAirportCode: f.DestinationAirportCode,
			ApprovedCapacity:       f.ApprovedCapacity,
			DepartureTime:          f.DepartureTime,
			ArrivalTime:            f.ArrivalTime,
			AircraftRegistration:   f.AircraftRegistration,
		})
	}
	render.JSON(w, r, response.OKWithData(Summary{
		RecentFlights: flights,
		Stats: Stats{
			FlightsInAir:          dash.FlightsInAir,
			WeeklyFlights:         dash.WeeklyFlights,
			UtilizationRate:       dash.UtilizationRate,
			AircraftOnGround:      dash.AircraftOnGround,
			AircraftInMaintenance: dash.AircraftInMaintenance,
		},
	}))
}
