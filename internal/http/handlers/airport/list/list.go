// Package list реализует HTTP-обработчик списка аэропортов.
package list

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

// Item — аэропорт в ответе.
type Item struct {
	AirportCode string `json:"airport_code"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country"`
	AirportName string `json:"airport_name"`
}

// Service описывает интерфейс бизнес-логики парка.
type Service interface {
	ListAirports(ctx context.Context) ([]*models.Airport, error)
}

// Handler обрабатывает HTTP-запросы списка аэропортов.
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
// @Summary Список аэропортов
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response "Список аэропортов"
// @Router /admin/airports [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.airport.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	airports, err := h.service.ListAirports(r.Context())
	if err != nil {
		log.Error("failed to list airports", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to list airports"))
		return
	}

	items := make([]Item, 0, len(airports))
	for _, a := range airports {
		items = append(items, Item{
			AirportCode: a.Code,
			City:        a.City,
			State:       a.State,
			Country:     a.Country,
			AirportName: a.Name,
		})
	}
	render.JSON(w, r, response.OKWithData(items))
}
