// Package remove реализует HTTP-обработчик удаления маршрута.
//
// Маршрут, на который ссылаются рейсы, удалить нельзя: запрос
// отклоняется с конфликтом.
package remove

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
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики парка.
type Service interface {
	RemoveRoute(ctx context.Context, routeID int) error
}

// Handler обрабатывает HTTP-запросы удаления маршрута.
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
// @Summary Удаление маршрута
// @Description Маршрут, занятый рейсами, не удаляется.
// @Tags Admin
// @Produce  json
// @Param route_id path int true "ID маршрута"
// @Success 200 {object} response.Response "Маршрут удалён"
// @Failure 404 {object} response.ErrorResponse "Маршрут не найден"
// @Failure 409 {object} response.ErrorResponse "Маршрут занят рейсами"
// @Router /admin/routes/{route_id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.route.remove"

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

	if err := h.service.RemoveRoute(r.Context(), routeID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRouteNotFound):
			log.Error("route not found", slog.Int("route_id", routeID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "route not found"))
		case errors.Is(err, repository.ErrRouteInUse):
			log.Error("route is referenced by flights", slog.Int("route_id", routeID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(response.CodeDeleteConflict, "route is referenced by flights"))
		default:
			log.Error("failed to delete route", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.CodeInternalError, "failed to delete route"))
		}
		return
	}

	log.Info("route deleted", slog.Int("route_id", routeID))
	render.JSON(w, r, response.OK("route deleted"))
}
