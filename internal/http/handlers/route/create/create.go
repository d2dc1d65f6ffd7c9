// Package create реализует HTTP-обработчик заведения маршрута.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
	fleetservice "github.com/aerosync-io/aerosync/internal/services/fleet"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Request — структура входных данных для заведения маршрута.
type Request struct {
	SourceAirportCode      string `json:"source_airport_code" validate:"required,len=3,alpha"`
	DestinationAirportCode string `json:"destination_airport_code" validate:"required,len=3,alpha"`
	ApprovedCapacity       int    `json:"approved_capacity" validate:"required,min=1"`
}

// Service описывает интерфейс бизнес-логики парка.
type Service interface {
	CreateRoute(ctx context.Context, route models.Route) (int, error)
}

// Handler обрабатывает HTTP-запросы заведения маршрута.
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
// @Summary Заведение маршрута
// @Description Оба аэропорта должны существовать и различаться, пара аэропортов уникальна.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные маршрута"
// @Success 201 {object} response.Response "Маршрут заведён"
// @Failure 400 {object} response.ErrorResponse "Аэропорт не существует или совпадают аэропорты"
// @Failure 409 {object} response.ErrorResponse "Маршрут уже существует"
// @Router /admin/routes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.route.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	routeID, err := h.service.CreateRoute(r.Context(), models.Route{
		SourceAirportCode:      req.SourceAirportCode,
		DestinationAirportCode: req.DestinationAirportCode,
		ApprovedCapacity:       req.ApprovedCapacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, fleetservice.ErrSameAirports):
			log.Error("source and destination airports are the same")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "source and destination airports cannot be the same"))
		case errors.Is(err, repository.ErrAirportNotFound):
			log.Error("airport does not exist", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "airport does not exist"))
		case errors.Is(err, repository.ErrAlreadyExists):
			log.Error("route already exists")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(response.CodeAlreadyExists, "route between these airports already exists"))
		default:
			log.Error("failed to create route", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.CodeInternalError, "failed to create route"))
		}
		return
	}

	log.Info("route created", slog.Int("route_id", routeID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"route_id": routeID,
	}))
}
