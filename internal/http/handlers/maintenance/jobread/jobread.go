// Package jobread реализует HTTP-обработчик получения работы обслуживания.
package jobread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

// Item — работа обслуживания в ответе.
type Item struct {
	JobID              int    `json:"job_id"`
	RegistrationNumber string `json:"registration_number"`
	EngineerEmail      string `json:"engineer_email"`
	CheckinDate        string `json:"checkin_date"`
	CheckoutDate       string `json:"checkout_date,omitempty"`
	Status             string `json:"status"`
	Type               string `json:"type"`
	Remarks            string `json:"remarks,omitempty"`
}

// Service описывает интерфейс бизнес-логики обслуживания.
type Service interface {
	Job(ctx context.Context, jobID int) (*models.EngineerSchedule, error)
}

// Handler обрабатывает HTTP-запросы получения работы.
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
// @Summary Получение работы обслуживания
// @Tags Engineer
// @Produce  json
// @Param job_id path int true "ID работы"
// @Success 200 {object} response.Response "Работа"
// @Failure 404 {object} response.ErrorResponse "Работа не найдена"
// @Router /engineer/jobs/{job_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.maintenance.jobread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	jobID, err := strconv.Atoi(chi.URLParam(r, "job_id"))
	if err != nil {
		log.Error("invalid job id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidRequest, "invalid job id"))
		return
	}

	job, err := h.service.Job(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			log.Error("job not found", slog.Int("job_id", jobID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "maintenance job not found"))
			return
		}
		log.Error("failed to get job", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to get job"))
		return
	}

	item := Item{
		JobID:              job.JobID,
		RegistrationNumber: job.RegistrationNumber,
		EngineerEmail:      job.EngineerEmail,
		CheckinDate:        job.CheckinDate.Format("2006-01-02"),
		Status:             string(job.Status),
		Type:               string(job.Type),
		Remarks:            job.Remarks,
	}
	if job.CheckoutDate != nil {
		item.CheckoutDate = job.CheckoutDate.Format("2006-01-02")
	}
	render.JSON(w, r, response.OKWithData(item))
}
