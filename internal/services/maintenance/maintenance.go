// Package maintenance содержит логику бизнес-уровня для работ
// технического обслуживания воздушных судов.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/aerosync-io/aerosync/internal/lib/rabbitmq"
	"github.com/aerosync-io/aerosync/internal/lib/sl"
	"github.com/aerosync-io/aerosync/internal/models"
)

// Repository описывает контракт хранилища для работ обслуживания.
type Repository interface {
	CreateJob(ctx context.Context, job models.EngineerSchedule) (int, error)
	GetJob(ctx context.Context, jobID int) (*models.EngineerSchedule, error)
	ListJobsForEngineer(ctx context.Context, engineerEmail string) ([]*models.EngineerSchedule, error)
	CloseJob(ctx context.Context, jobID int, engineerEmail string, checkout time.Time) error
	CountJobsCompletedSince(ctx context.Context, since time.Time) (int, error)

	GetAircraft(ctx context.Context, registration string) (*models.Aircraft, error)
	ListAircraft(ctx context.Context) ([]*models.Aircraft, error)
}

// JobEvent — событие жизненного цикла работы, публикуемое в брокер.
type JobEvent struct {
	Event              string `json:"event"`
	JobID              int    `json:"job_id"`
	RegistrationNumber string `json:"registration_number"`
	EngineerEmail      string `json:"engineer_email"`
	Type               string `json:"type,omitempty"`
}

// Service реализует сценарии обслуживания. Канал events может быть nil —
// тогда публикация событий отключена.
type Service struct {
	repo   Repository
	log    *slog.Logger
	events *amqp.Channel
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger, events *amqp.Channel) *Service {
	return &Service{
		repo:   repo,
		log:    log,
		events: events,
	}
}

// CreateJob заводит работу обслуживания по существующему судну
// и ставит её в статус pending.
func (s *Service) CreateJob(ctx context.Context, registration, engineerEmail, jobType, remarks string) (*models.EngineerSchedule, error) {
	parsedType, err := models.ParseMaintenanceType(jobType)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetAircraft(ctx, registration); err != nil {
		return nil, err
	}

	job := models.EngineerSchedule{
		RegistrationNumber: registration,
		EngineerEmail:      engineerEmail,
		CheckinDate:        time.Now().UTC(),
		Status:             models.MaintenanceStatusPending,
		Type:               parsedType,
		Remarks:            remarks,
	}
	jobID, err := s.repo.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}
	job.JobID = jobID

	s.publish(JobEvent{
		Event:              "job_created",
		JobID:              jobID,
		RegistrationNumber: registration,
		EngineerEmail:      engineerEmail,
		Type:               jobType,
	})
	return &job, nil
}

// MyJobs возвращает работы, закреплённые за инженером.
func (s *Service) MyJobs(ctx context.Context, engineerEmail string) ([]*models.EngineerSchedule, error) {
	return s.repo.ListJobsForEngineer(ctx, engineerEmail)
}

// Job возвращает работу обслуживания по job_id.
func (s *Service) Job(ctx context.Context, jobID int) (*models.EngineerSchedule, error) {
	return s.repo.GetJob(ctx, jobID)
}

// ListAircraft возвращает весь парк для инженерного обзора.
func (s *Service) ListAircraft(ctx context.Context) ([]*models.Aircraft, error) {
	return s.repo.ListAircraft(ctx)
}

// Dashboard — сводка для панели инженера.
type Dashboard struct {
	Aircraft             []*models.Aircraft
	AssignedJobs         []*models.EngineerSchedule
	MonthlyCompletedJobs int // Работы, завершённые с начала текущего месяца, по всем инженерам
}

// Dashboard собирает сводку инженера: парк со статусами, собственные
// работы и число работ, завершённых в текущем месяце.
func (s *Service) Dashboard(ctx context.Context, engineerEmail string, now time.Time) (*Dashboard, error) {
	aircraft, err := s.repo.ListAircraft(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.repo.ListJobsForEngineer(ctx, engineerEmail)
	if err != nil {
		return nil, err
	}
	now = now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	completed, err := s.repo.CountJobsCompletedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Aircraft:             aircraft,
		AssignedJobs:         jobs,
		MonthlyCompletedJobs: completed,
	}, nil
}

// CloseJob завершает собственную работу инженера и возвращает её
// обновлённое состояние.
func (s *Service) CloseJob(ctx context.Context, jobID int, engineerEmail string) (*models.EngineerSchedule, error) {
	if err := s.repo.CloseJob(ctx, jobID, engineerEmail, time.Now().UTC()); err != nil {
		return nil, err
	}
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	s.publish(JobEvent{
		Event:              "job_closed",
		JobID:              jobID,
		RegistrationNumber: job.RegistrationNumber,
		EngineerEmail:      engineerEmail,
	})
	return job, nil
}

// publish отправляет событие в брокер; сбой публикации не ломает запрос.
func (s *Service) publish(event JobEvent) {
	if s.events == nil {
		return
	}
	if err := rabbitmq.PublishMessage(s.events, "", rabbitmq.MaintenanceEventsQueue, event); err != nil {
		s.log.Error("failed to publish maintenance event", sl.Err(err))
	}
}
