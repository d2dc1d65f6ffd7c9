// Package aircraftlist реализует HTTP-обработчик инженерного обзора парка.
package aircraftlist

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

// Item — воздушное судно в ответе.
type Item struct {
	RegistrationNumber string `json:"registration_number"`
	Company            string `json:"aircraft_company"`
	Model              string `json:"model"`
	Capacity           int    `json:"capacity"`
	Status             string `json:"status"`
}

// Service описывает интерфейс бизнес-логики обслуживания.
type Service interface {
	ListAircraft(ctx context.Context) ([]*models.Aircraft, error)
}

// Handler обрабатывает HTTP-запросы обзора парка.
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
// @Summary Парк воздушных судов
// @Description Список судов со статусами для инженерного обзора.
// @Tags Engineer
// @Produce  json
// @Success 200 {object} response.Response "Список судов"
// @Router /engineer/aircraft [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.maintenance.aircraftlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	aircraft, err := h.service.ListAircraft(r.Context())
	if err != nil {
		log.Error("failed to list aircraft", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to list aircraft"))
		return
	}

	items := make([]Item, 0, len(aircraft))
	for _, a := range aircraft {
		items = append(items, Item{
			RegistrationNumber: a.RegistrationNumber,
			Company:            a.Company,
			Model:              a.Model,
			Capacity:           a.Capacity,
			Status:             string(a.Status),
		})
	}
	render.JSON(w, r, response.OKWithData(items))
}
