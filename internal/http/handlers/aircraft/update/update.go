// Package update реализует HTTP-обработчик частичного обновления воздушного судна.
//
// Все поля, кроме регистрационного номера в пути, опциональны:
// обновляются только переданные.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

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

// Request — структура входных данных частичного обновления.
type Request struct {
	Company  *string `json:"aircraft_company" validate:"omitempty,min=1"`
	Model    *string `json:"model" validate:"omitempty,min=1"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=1"`
	Status   *string `json:"status" validate:"omitempty,oneof=active maintenance retired"`
}

// Item — воздушное судно в ответе.
type Item struct {
	RegistrationNumber string `json:"registration_number"`
	Company            string `json:"aircraft_company"`
	Model              string `json:"model"`
	Capacity           int    `json:"capacity"`
	Status             string `json:"status"`
}

// Service описывает интерфейс бизнес-логики парка.
type Service interface {
	UpdateAircraft(ctx context.Context, registration string, upd fleetservice.AircraftUpdate) (*models.Aircraft, error)
}

// Handler обрабатывает HTTP-запросы обновления судна.
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
// @Summary Частичное обновление воздушного судна
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param registration_number path string true "Регистрационный номер"
// @Param request body Request true "Обновляемые поля"
// @Success 200 {object} response.Response "Обновлённое судно"
// @Failure 404 {object} response.ErrorResponse "Судно не найдено"
// @Router /admin/aircraft/{registration_number} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.aircraft.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	registration := chi.URLParam(r, "registration_number")

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

	upd := fleetservice.AircraftUpdate{
		Company:  req.Company,
		Model:    req.Model,
		Capacity: req.Capacity,
	}
	if req.Status != nil {
		status := models.AircraftStatus(*req.Status)
		upd.Status = &status
	}

	aircraft, err := h.service.UpdateAircraft(r.Context(), registration, upd)
	if err != nil {
		if errors.Is(err, repository.ErrAircraftNotFound) {
			log.Error("aircraft not found", slog.String("registration", registration))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "aircraft not found"))
			return
		}
		log.Error("failed to update aircraft", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to update aircraft"))
		return
	}

	log.Info("aircraft updated", slog.String("registration", registration))
	render.JSON(w, r, response.OKWithData(Item{
		RegistrationNumber: aircraft.RegistrationNumber,
		Company:            aircraft.Company,
		Model:              aircraft.Model,
		Capacity:           aircraft.Capacity,
		Status:             string(aircraft.Status),
	}))
}
