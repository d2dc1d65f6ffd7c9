// Package assigncrew реализует HTTP-обработчик назначения члена
// экипажа на рейс.
package assigncrew

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
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Request — структура входных данных для назначения экипажа.
type Request struct {
	FlightNumber string `json:"flight_number" validate:"required"`
	FlightDate   string `json:"flight_date" validate:"required,datetime=2006-01-02"`
	CrewEmail    string `json:"crew_email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики планирования.
type Service interface {
	AssignCrew(ctx context.Context, flightNumber string, date time.Time, crewEmail string) error
}

// Handler обрабатывает HTTP-запросы назначения экипажа.
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
// @Summary Назначение члена экипажа на рейс
// @Tags Scheduler
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные назначения"
// @Success 201 {object} response.Response "Назначение создано"
// @Failure 404 {object} response.ErrorResponse "Рейс или член экипажа не найдены"
// @Failure 409 {object} response.ErrorResponse "Назначение уже существует"
// @Router /scheduler/crew-schedules [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flight.assigncrew"

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

	err = h.service.AssignCrew(r.Context(), req.FlightNumber, date, req.CrewEmail)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFlightNotFound):
			log.Error("flight not found",
				slog.String("flight_number", req.FlightNumber),
				slog.String("date", req.FlightDate))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "flight not found"))
		case errors.Is(err, repository.ErrUserNotFound):
			log.Error("crew member not found", slog.String("crew_email", req.CrewEmail))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "crew member not found"))
		case errors.Is(err, repository.ErrAlreadyExists):
			log.Error("crew member already assigned to flight")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(response.CodeAlreadyExists, "crew member is already assigned to this flight"))
		default:
			log.Error("failed to assign crew", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.CodeInternalError, "failed to assign crew"))
		}
		return
	}

	log.Info("crew assigned",
		slog.String("flight_number", req.FlightNumber),
		slog.String("crew_email", req.CrewEmail))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OK("crew member assigned to flight"))
}
