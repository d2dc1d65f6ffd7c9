// Package engineer реализует HTTP-обработчик сводной панели инженера.
package engineer

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/aerosync-io/aerosync/internal/http/middlewarectx"
	"github.com/aerosync-io/aerosync/internal/http/response"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	maintenanceservice "github.com/aerosync-io/aerosync/internal/services/maintenance"
)

// AircraftItem — судно со статусом в сводке.
type AircraftItem struct {
	RegistrationNumber string `json:"registration_number"`
	Status             string `json:"status"`
}

// JobItem — закреплённая за инженером работа в сводке.
type JobItem struct {
	JobID              int    `json:"job_id"`
	RegistrationNumber string `json:"registration_number"`
	CheckinDate        string `json:"checkin_date"`
	Status             string `json:"status"`
	Type               string `json:"type"`
}

// Summary — сводка инженера.
type Summary struct {
	Aircraft             []AircraftItem `json:"aircraft"`
	AssignedJobs         []JobItem      `json:"assigned_jobs"`
	MonthlyCompletedJobs int            `json:"monthly_completed_jobs"`
}

// Service описывает интерфейс бизнес-логики обслуживания.
type Service interface {
	Dashboard(ctx context.Context, engineerEmail string, now time.Time) (*maintenanceservice.Dashboard, error)
}

// Handler обрабатывает HTTP-запросы панели инженера.
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
// @Summary Панель инженера
// @Description Парк со статусами, собственные работы и работы, завершённые в этом месяце.
// @Tags Engineer
// @Produce  json
// @Success 200 {object} response.Response "Сводка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /engineer/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.engineer"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("missing user email in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeUnauthorized, "not authenticated"))
		return
	}

	dash, err := h.service.Dashboard(r.Context(), email, time.Now().UTC())
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternalError, "failed to build dashboard"))
		return
	}

	aircraft := make([]AircraftItem, 0, len(dash.Aircraft))
	for _, a := range dash.Aircraft {
		aircraft = append(aircraft, AircraftItem{
			RegistrationNumber: a.RegistrationNumber,
			Status:             string(a.Status),
		})
	}
	jobs := make([]JobItem, 0, len(dash.AssignedJobs))
	for _, j := range dash.AssignedJobs {
		jobs = append(jobs, JobItem{
			JobID:              j.JobID,
			RegistrationNumber: j.RegistrationNumber,
			CheckinDate:        j.CheckinDate.Format("2006-01-02"),
			Status:             string(j.Status),
			Type:               string(j.Type),
		})
	}
	render.JSON(w, r, response.OKWithData(Summary{
		Aircraft:             aircraft,
		AssignedJobs:         jobs,
		MonthlyCompletedJobs: dash.MonthlyCompletedJobs,
	}))
}
