// Package list реализует HTTP-обработчик списка маршрутов.
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

// Item — маршрут в ответе.
type Item struct {
	RouteID                int    `json:"route_id"`
	SourceAirportCode      string `json:"source_airport_code"`
	DestinationAirportCode string `json:"destination_airport_code"`
	ApprovedCapacity       int    `json:"approved_capacity"`
}

// Service описывает интерфейс бизнес-логики парка.
type Service interface {
	ListRoutes(ctx context.Context) ([]*models.Route, error)
}

// Handler обрабатывает HTTP-запросы списка маршрутов.
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
// @Summary Список маршрутов
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response "Список маршрутов"
// @Router /admin/routes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.route.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	routes, err := h.service.ListRoutes(r.Context())
	if err != nil {
		log.Error("failed to list routes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to list routes"))
		return
	}

	items := make([]Item, 0, len(routes))
	for _, rt := range routes {
		items = append(items, Item{
			RouteID:                rt.ID,
			SourceAirportCode:      rt.SourceAirportCode,
			DestinationAirportCode: rt.DestinationAirportCode,
			ApprovedCapacity:       rt.ApprovedCapacity,
		})
	}
	render.JSON(w, r, response.OKWithData(items))
}
