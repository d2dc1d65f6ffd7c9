// Package create реализует HTTP-обработчик заведения воздушного судна.
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
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Request — структура входных данных для заведения судна.
type Request struct {
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Company            string `json:"aircraft_company" validate:"required"`
	Model              string `json:"model" validate:"required"`
	Capacity           int    `json:"capacity" validate:"required,min=1"`
	Status             string `json:"status" validate:"omitempty,oneof=active maintenance retired"`
}

// Service описывает интерфейс бизнес-логики парка.
type Service interface {
	CreateAircraft(ctx context.Context, aircraft models.Aircraft) error
}

// Handler обрабатывает HTTP-запросы заведения судна.
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
// @Summary Заведение воздушного судна
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные судна"
// @Success 201 {object} response.Response "Судно заведено"
// @Failure 409 {object} response.ErrorResponse "Регистрационный номер уже существует"
// @Router /admin/aircraft [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.aircraft.create"

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

	err := h.service.CreateAircraft(r.Context(), models.Aircraft{
		RegistrationNumber: req.RegistrationNumber,
		Company:            req.Company,
		Model:              req.Model,
		Capacity:           req.Capacity,
		Status:             models.AircraftStatus(req.Status),
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			log.Error("aircraft already exists", slog.String("registration", req.RegistrationNumber))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(response.CodeAlreadyExists, "aircraft with this registration number already exists"))
			return
		}
		log.Error("failed to create aircraft", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to create aircraft"))
		return
	}

	log.Info("aircraft created", slog.String("registration", req.RegistrationNumber))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OK("aircraft created"))
}
