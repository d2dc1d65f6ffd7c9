// Package jobclose реализует HTTP-обработчик завершения работы
// технического обслуживания.
//
// Инженер может завершить только собственную незакрытую работу;
// чужие и уже завершённые работы отвечают 404.
package jobclose

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/middlewarectx"
	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики обслуживания.
type Service interface {
	CloseJob(ctx context.Context, jobID int, engineerEmail string) (*models.EngineerSchedule, error)
}

// Handler обрабатывает HTTP-запросы завершения работы.
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
// @Summary Завершение работы обслуживания
// @Tags Engineer
// @Produce  json
// @Param job_id path int true "Идентификатор работы"
// @Success 200 {object} response.Response "Работа завершена"
// @Failure 404 {object} response.ErrorResponse "Работа не найдена или принадлежит другому инженеру"
// @Router /engineer/jobs/{job_id}/close [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.maintenance.jobclose"

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

	jobID, err := strconv.Atoi(chi.URLParam(r, "job_id"))
	if err != nil {
		log.Error("invalid job id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidRequest, "job_id must be an integer"))
		return
	}

	job, err := h.service.CloseJob(r.Context(), jobID, email)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			log.Error("job not found or not owned by engineer", slog.Int("job_id", jobID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "maintenance job not found"))
			return
		}
		log.Error("failed to close maintenance job", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to close maintenance job"))
		return
	}

	log.Info("maintenance job closed", slog.Int("job_id", jobID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"job_id": job.JobID,
		"status": job.Status,
	}))
}
