// Package create реализует HTTP-обработчик заведения аэропорта.
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

// Request — структура входных данных для заведения аэропорта.
type Request struct {
	AirportCode string `json:"airport_code" validate:"required,len=3,alpha"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state"`
	Country     string `json:"country" validate:"required"`
	AirportName string `json:"airport_name" validate:"required"`
}

// Service описывает интерфейс бизнес-логики парка.
type Service interface {
	CreateAirport(ctx context.Context, airport models.Airport) error
}

// Handler обрабатывает HTTP-запросы заведения аэропорта.
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
// @Summary Заведение аэропорта
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные аэропорта"
// @Success 201 {object} response.Response "Аэропорт заведён"
// @Failure 409 {object} response.ErrorResponse "Код аэропорта уже существует"
// @Router /admin/airports [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.airport.create"

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

	err := h.service.CreateAirport(r.Context(), models.Airport{
		Code:    req.AirportCode,
		City:    req.City,
		State:   req.State,
		Country: req.Country,
		Name:    req.AirportName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			log.Error("airport already exists", slog.String("code", req.AirportCode))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(response.CodeAlreadyExists, "airport with this code already exists"))
			return
		}
		log.Error("failed to create airport", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to create airport"))
		return
	}

	log.Info("airport created", slog.String("code", req.AirportCode))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OK("airport created"))
}
