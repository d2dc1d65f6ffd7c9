// Package update реализует HTTP-обработчик частичного обновления маршрута.
//
// Все поля опциональны: обновляются только переданные. Новые аэропорты
// должны существовать, итоговая пара аэропортов — различаться и
// оставаться уникальной.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
	fleetservice "github.com/aerosync-io/aerosync/internal/services/fleet"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Request — структура входных данных частичного обновления маршрута.
type Request struct {
	SourceAirportCode      *string `json:"source_airport_code" validate:"omitempty,len=3,alpha"`
	DestinationAirportCode *string `json:"destination_airport_code" validate:"omitempty,len=3,alpha"`
	ApprovedCapacity       *int    `json:"approved_capacity" validate:"omitempty,min=1"`
}

// Item — маршрут в ответе.
type Item struct {
	RouteID                int    `json:"route_id"`
	SourceAirportCode      string `json:"source_airport_code"`
	DestinationAirportCode string `json:"destination_airport_code"`
	ApprovedCapacity       int    `json:"approved_capacity"`
}

// Service описывает интерфейс бизнес-логики парка.
type Service interface {
	UpdateRoute(ctx context.Context, routeID int, upd fleetservice.RouteUpdate) (*models.Route, error)
}

// Handler обрабатывает HTTP-запросы обновления маршрута.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Частичное обновление маршрута
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param route_id path int true "ID маршрута"
// @Param request body Request true "Обновляемые поля"
// @Success 200 {object} response.Response "Обновлённый маршрут"
// @Failure 404 {object} response.ErrorResponse "Маршрут не найден"
// @Failure 409 {object} response.ErrorResponse "Такая пара аэропортов уже существует"
// @Router /admin/routes/{route_id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.route.update"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidRequest, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	route, err := h.service.UpdateRoute(r.Context(), routeID, fleetservice.RouteUpdate{
		SourceAirportCode:      req.SourceAirportCode,
		DestinationAirportCode: req.DestinationAirportCode,
		ApprovedCapacity:       req.ApprovedCapacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRouteNotFound):
			log.Error("route not found", slog.Int("route_id", routeID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "route not found"))
		case errors.Is(err, repository.ErrAirportNotFound):
			log.Error("airport does not exist", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "airport does not exist"))
		case errors.Is(err, fleetservice.ErrSameAirports):
			log.Error("same source and destination airports")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "source and destination airports cannot be the same"))
		case errors.Is(err, repository.ErrAlreadyExists):
			log.Error("route pair already exists")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(response.CodeAlreadyExists, "route between these airports already exists"))
		default:
			log.Error("failed to update route", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.CodeInternalError, "failed to update route"))
		}
		return
	}

	log.Info("route updated", slog.Int("route_id", routeID))
	render.JSON(w, r, response.OKWithData(Item{
		RouteID:                route.ID,
		SourceAirportCode:      route.SourceAirportCode,
		DestinationAirportCode: route.DestinationAirportCode,
		ApprovedCapacity:       route.ApprovedCapacity,
	}))
}
