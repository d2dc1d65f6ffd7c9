// Package admin реализует HTTP-обработчик сводной панели администратора.
package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	fleetservice "github.com/aerosync-io/aerosync/internal/services/fleet"
)

// RouteItem — маршрут в сводке.
type RouteItem struct {
	RouteID                int    `json:"route_id"`
	SourceAirportCode      string `json:"source_airport_code"`
	DestinationAirportCode string `json:"destination_airport_code"`
	ApprovedCapacity       int    `json:"approved_capacity"`
}

// Summary — сводка администратора.
type Summary struct {
	PopularRoutes         []RouteItem `json:"most_popular_routes"`
	ActiveAircraft        int         `json:"active_aircraft"`
	AircraftInMaintenance int         `json:"aircraft_in_maintenance"`
}

// Service описывает интерфейс бизнес-логики парка.
type Service interface {
	Dashboard(ctx context.Context) (*fleetservice.Dashboard, error)
}

// Handler обрабатывает HTTP-запросы панели администратора.
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
// @Summary Панель администратора
// @Description Самые вместительные маршруты и распределение парка по статусам.
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response "Сводка"
// @Router /admin/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.admin"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	dash, err := h.service.Dashboard(r.Context())
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to build dashboard"))
		return
	}

	routes := make([]RouteItem, 0, len(dash.PopularRoutes))
	for _, route := range dash.PopularRoutes {
		routes = append(routes, RouteItem{
			RouteID:                route.ID,
			SourceAirportCode:      route.SourceAirportCode,
			DestinationAirportCode: route.DestinationAirportCode,
			ApprovedCapacity:       route.ApprovedCapacity,
		})
	}
	render.JSON(w, r, response.OKWithData(Summary{
		PopularRoutes:         routes,
		ActiveAircraft:        dash.ActiveAircraft,
		AircraftInMaintenance: dash.AircraftInMaintenance,
	}))
}
