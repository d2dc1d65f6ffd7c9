// Package update реализует HTTP-обработчик частичного обновления рейса.
//
// Все поля опциональны: обновляются только переданные. Перенос на дату,
// на которую рейс с тем же номером уже существует, отклоняется.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
	scheduleservice "github.com/aerosync-io/aerosync/internal/services/schedule"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Request — структура входных данных частичного обновления рейса.
type Request struct {
	FlightDate           *string `json:"flight_date" validate:"omitempty,datetime=2006-01-02"`
	RouteID              *int    `json:"route_id" validate:"omitempty,min=1"`
	DepartureTime        *string `json:"departure_time" validate:"omitempty,datetime=15:04"`
	ArrivalTime          *string `json:"arrival_time" validate:"omitempty,datetime=15:04"`
	AircraftRegistration *string `json:"aircraft_registration_number" validate:"omitempty,min=1"`
}

// Item — рейс в ответе.
type Item struct {
	FlightNumber         string `json:"flight_number"`
	FlightDate           string `json:"flight_date"`
	RouteID              int    `json:"route_id"`
	DepartureTime        string `json:"departure_time"`
	ArrivalTime          string `json:"arrival_time"`
	AircraftRegistration string `json:"aircraft_registration_number"`
}

// Service описывает интерфейс бизнес-логики планирования.
type Service interface {
	UpdateFlight(ctx context.Context, flightNumber string, date time.Time, upd scheduleservice.FlightUpdate) (*models.Flight, error)
}

// Handler обрабатывает HTTP-запросы обновления рейса.
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
// @Summary Частичное обновление рейса
// @Tags Scheduler
// @Accept  json
// @Produce  json
// @Param flight_number path string true "Номер рейса"
// @Param date path string true "Дата рейса (2006-01-02)"
// @Param request body Request true "Обновляемые поля"
// @Success 200 {object} response.Response "Обновлённый рейс"
// @Failure 404 {object} response.ErrorResponse "Рейс не найден"
// @Failure 409 {object} response.ErrorResponse "Рейс на новую дату уже существует"
// @Router /scheduler/flights/{flight_number}/{date} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flight.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	flightNumber := chi.URLParam(r, "flight_number")
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		log.Error("invalid flight date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidRequest, "invalid flight date"))
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

	upd := scheduleservice.FlightUpdate{
		RouteID:              req.RouteID,
		DepartureTime:        req.DepartureTime,
		ArrivalTime:          req.ArrivalTime,
		AircraftRegistration: req.AircraftRegistration,
	}
	if req.FlightDate != nil {
		newDate, _ := time.Parse("2006-01-02", *req.FlightDate)
		upd.Date = &newDate
	}

	flight, err := h.service.UpdateFlight(r.Context(), flightNumber, date, upd)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFlightNotFound):
			log.Error("flight not found", slog.String("flight_number", flightNumber))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "flight not found"))
		case errors.Is(err, repository.ErrRouteNotFound):
			log.Error("route does not exist", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "route does not exist"))
		case errors.Is(err, repository.ErrAircraftNotFound):
			log.Error("aircraft does not exist", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "aircraft does not exist"))
		case errors.Is(err, scheduleservice.ErrAircraftNotActive):
			log.Error("aircraft is not active")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "aircraft is not active"))
		case errors.Is(err, repository.ErrAlreadyExists):
			log.Error("flight already exists on target date", slog.String("flight_number", flightNumber))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(response.CodeAlreadyExists, "flight with this number already exists on the target date"))
		default:
			log.Error("failed to update flight", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.CodeInternalError, "failed to update flight"))
		}
		return
	}

	log.Info("flight updated", slog.String("flight_number", flightNumber))
	render.JSON(w, r, response.OKWithData(Item{
		FlightNumber:         flight.FlightNumber,
		FlightDate:           flight.Date.Format("2006-01-02"),
		RouteID:              flight.RouteID,
		DepartureTime:        flight.DepartureTime,
		ArrivalTime:          flight.ArrivalTime,
		AircraftRegistration: flight.AircraftRegistration,
	}))
}
