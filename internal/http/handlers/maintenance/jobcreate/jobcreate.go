// Package jobcreate реализует HTTP-обработчик заведения работы
// технического обслуживания.
package jobcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/aerosync-io/aerosync/internal/http/middlewarectx"
	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Request — структура входных данных для заведения работы.
type Request struct {
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Type               string `json:"type" validate:"required,oneof=routine inspection repair overhaul"`
	Remarks            string `json:"remarks"`
}

// Service описывает интерфейс бизнес-логики обслуживания.
type Service interface {
	CreateJob(ctx context.Context, registration, engineerEmail, jobType, remarks string) (*models.EngineerSchedule, error)
}

// Handler обрабатывает HTTP-запросы заведения работы.
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
// @Summary Заведение работы обслуживания
// @Description Работа закрепляется за инженером из токена и ставится в статус pending.
// @Tags Engineer
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные работы"
// @Success 201 {object} response.Response "Работа заведена"
// @Failure 404 {object} response.ErrorResponse "Судно не найдено"
// @Router /engineer/jobs [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.maintenance.jobcreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeUnauthorized, "not authenticated"))
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

	job, err := h.service.CreateJob(r.Context(), req.RegistrationNumber, email, req.Type, req.Remarks)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnknownMaintenanceType):
			log.Error("unknown maintenance type", slog.String("type", req.Type))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.CodeInvalidRequest, "unknown maintenance type"))
		case errors.Is(err, repository.ErrAircraftNotFound):
			log.Error("aircraft not found", slog.String("registration", req.RegistrationNumber))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "aircraft not found"))
		default:
			log.Error("failed to create maintenance job", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.CodeInternalError, "failed to create maintenance job"))
		}
		return
	}

	log.Info("maintenance job created",
		slog.Int("job_id", job.JobID),
		slog.String("registration", job.RegistrationNumber))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"job_id": job.JobID,
		"status": job.Status,
	}))
}
