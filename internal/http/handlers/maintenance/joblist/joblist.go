// Package joblist реализует HTTP-обработчик списка работ инженера.
package joblist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/middlewarectx"
	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
)

// Item — работа обслуживания в ответе.
type Item struct {
	JobID              int    `json:"job_id"`
	RegistrationNumber string `json:"registration_number"`
	CheckinDate        string `json:"checkin_date"`
	CheckoutDate       string `json:"checkout_date,omitempty"`
	Status             string `json:"status"`
	Type               string `json:"type"`
	Remarks            string `json:"remarks,omitempty"`
}

// Service описывает интерфейс бизнес-логики обслуживания.
type Service interface {
	MyJobs(ctx context.Context, engineerEmail string) ([]*models.EngineerSchedule, error)
}

// Handler обрабатывает HTTP-запросы списка работ.
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
// @Summary Работы текущего инженера
// @Description Email берётся из токена аутентифицированного пользователя.
// @Tags Engineer
// @Produce  json
// @Success 200 {object} response.Response "Список работ"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /engineer/jobs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.maintenance.joblist"

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

	jobs, err := h.service.MyJobs(r.Context(), email)
	if err != nil {
		log.Error("failed to list maintenance jobs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to list maintenance jobs"))
		return
	}

	items := make([]Item, 0, len(jobs))
	for _, j := range jobs {
		item := Item{
			JobID:              j.JobID,
			RegistrationNumber: j.RegistrationNumber,
			CheckinDate:        j.CheckinDate.Format("2006-01-02"),
			Status:             string(j.Status),
			Type:               string(j.Type),
			Remarks:            j.Remarks,
		}
		if j.CheckoutDate != nil {
			item.CheckoutDate = j.CheckoutDate.Format("2006-01-02")
		}
		items = append(items, item)
	}
	render.JSON(w, r, response.OKWithData(items))
}
