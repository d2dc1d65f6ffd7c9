// Package create реализует HTTP-обработчик заведения рейса.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
	scheduleservice "github.com/aerosync-io/aerosync/internal/services/schedule"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Request — структура входных данных для заведения рейса.
type Request struct {
	FlightNumber         string `json:"flight_number" validate:"required"`
	FlightDate           string `json:"flight_date" validate:"required,datetime=2006-01-02"`
	RouteID              int    `json:"route_id" validate:"required,min=1"`
	DepartureTime        string `json:"departure_time" validate:"required,datetime=15:04"`
	ArrivalTime          string `json:"arrival_time" validate:"required,datetime=15:04"`
	AircraftRegistration string `json:"aircraft_registration_number" validate:"required"`
}

// Service описывает интерфейс бизнес-логики планирования.
type Service interface {
	CreateFlight(ctx context.Context, flight models.Flight) error
}

// Handler обрабатывает HTTP-запросы заведения рейса.
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
// @Summary Заведение рейса
// @Description Маршрут должен существовать, судно — существовать и быть в статусе active.
// @Tags Scheduler
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные рейса"
// @Success 201 {object} response.Response "Рейс заведён"
// @Failure 400 {object} response.ErrorResponse "Маршрут или судно не подходят"
// @Failure 409 {object} response.ErrorResponse "Рейс на эту дату уже существует"
// @Router /scheduler/flights [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flight.create"

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

	date, err := time.Parse("2006-01-02", req.FlightDate)
	if err != nil {
		log.Error("failed to parse flight date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidRequest, "flight_date must be in YYYY-MM-DD format"))
		return
	}

	err = h.service.CreateFlight(r.Context(), models.Flight{
		FlightNumber:         req.FlightNumber,
		Date:                 date,
		RouteID:              req.RouteID,
		DepartureTime:        req.DepartureTime,
		ArrivalTime:          req.ArrivalTime,
		AircraftRegistration: req.AircraftRegistration,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRouteNotFound):
			log.Error("route not found", slog.Int("route_id", req.RouteID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "route does not exist"))
		case errors.Is(err, repository.ErrAircraftNotFound):
			log.Error("aircraft not found", slog.String("registration", req.AircraftRegistration))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "aircraft does not exist"))
		case errors.Is(err, scheduleservice.ErrAircraftNotActive):
			log.Error("aircraft is not active", slog.String("registration", req.AircraftRegistration))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "aircraft is not in active status"))
		case errors.Is(err, repository.ErrAlreadyExists):
			log.Error("flight already exists",
				slog.String("flight_number", req.FlightNumber),
				slog.String("date", req.FlightDate))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(response.CodeAlreadyExists, "flight with this number already exists on this date"))
		default:
			log.Error("failed to create flight", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.CodeInternalError, "failed to create flight"))
		}
		return
	}

	log.Info("flight created",
		slog.String("flight_number", req.FlightNumber),
		slog.String("date", req.FlightDate))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OK("flight created"))
}
