// Package read реализует HTTP-обработчик чтения воздушного судна.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

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
	GetAircraft(ctx context.Context, registration string) (*models.Aircraft, error)
}

// Handler обрабатывает HTTP-запросы чтения судна.
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
// @Summary Воздушное судно по регистрационному номеру
// @Tags Admin
// @Produce  json
// @Param registration_number path string true "Регистрационный номер"
// @Success 200 {object} response.Response "Судно"
// @Failure 404 {object} response.ErrorResponse "Судно не найдено"
// @Router /admin/aircraft/{registration_number} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.aircraft.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	registration := chi.URLParam(r, "registration_number")

	aircraft, err := h.service.GetAircraft(r.Context(), registration)
	if err != nil {
		if errors.Is(err, repository.ErrAircraftNotFound) {
			log.Error("aircraft not found", slog.String("registration", registration))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "aircraft not found"))
			return
		}
		log.Error("failed to read aircraft", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to read aircraft"))
		return
	}

	render.JSON(w, r, response.OKWithData(Item{
		RegistrationNumber: aircraft.RegistrationNumber,
		Company:            aircraft.Company,
		Model:              aircraft.Model,
		Capacity:           aircraft.Capacity,
		Status:             string(aircraft.Status),
	}))
}
