// Package read реализует HTTP-обработчик получения маршрута по ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Item — маршрут в ответе.
type Item struct {
	RouteID                int    `json:"route_id"`
	SourceAirportCode      string `json:"source_airport_code"`
	DestinationAirportCode string `json:"destination_airport_code"`
	ApprovedCapacity       int    `json:"approved_capacity"`
}

// Service описывает интерфейс бизнес-логики парка.
type Service interface {
	GetRoute(ctx context.Context, routeID int) (*models.Route, error)
}

// Handler обрабатывает HTTP-запросы получения маршрута.
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
// @Summary Получение маршрута
// @Tags Admin
// @Produce  json
// @Param route_id path int true "ID маршрута"
// @Success 200 {object} response.Response "Маршрут"
// @Failure 404 {object} response.ErrorResponse "Маршрут не найден"
// @Router /admin/routes/{route_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.route.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	routeID, err := strconv.Atoi(chi.URLParam(r, "route_id"))
	if err != nil {
		log.Error("invalid route id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidRequest, "invalid route id"))
		return
	}

	route, err := h.service.GetRoute(r.Context(), routeID)
	if err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			log.Error("route not found", slog.Int("route_id", routeID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "route not found"))
			return
		}
		log.Error("failed to get route", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to get route"))
		return
	}

	render.JSON(w, r, response.OKWithData(Item{
		RouteID:                route.ID,
		SourceAirportCode:      route.SourceAirportCode,
		DestinationAirportCode: route.DestinationAirportCode,
		ApprovedCapacity:       route.ApprovedCapacity,
	}))
}
