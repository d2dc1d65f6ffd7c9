package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aerosync-io/aerosync/internal/models"
)

// CreateJob сохраняет новую работу обслуживания и возвращает её job_id.
func (s *Storage) CreateJob(ctx context.Context, job models.EngineerSchedule) (int, error) {
	const op = "storage.CreateJob"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO engineer_schedules (registration_number, engineer_email,
			      checkin_date, status, type, remarks)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING job_id;`
	if err := s.DB.QueryRowContext(ctx, query,
		job.RegistrationNumber, job.EngineerEmail, job.CheckinDate,
		string(job.Status), string(job.Type), job.Remarks).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetJob возвращает работу обслуживания по job_id.
func (s *Storage) GetJob(ctx context.Context, jobID int) (*models.EngineerSchedule, error) {
	const op = "storage.GetJob"

	query := `SELECT job_id, registration_number, engineer_email,
			      checkin_date, checkout_date, status, type, COALESCE(remarks, '')
			  FROM engineer_schedules
			  WHERE job_id = $1`
	j := &models.EngineerSchedule{}
	var checkout sql.NullTime
	if err := s.DB.QueryRowContext(ctx, query, jobID).Scan(
		&j.JobID, &j.RegistrationNumber, &j.EngineerEmail,
		&j.CheckinDate, &checkout, &j.Status, &j.Type, &j.Remarks); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrJobNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if checkout.Valid {
		j.CheckoutDate = &checkout.Time
	}
	return j, nil
}

// ListJobsForEngineer возвращает работы, закреплённые за инженером.
func (s *Storage) ListJobsForEngineer(ctx context.Context, engineerEmail string) ([]*models.EngineerSchedule, error) {
	const op = "storage.ListJobsForEngineer"

	query := `SELECT job_id, registration_number, engineer_email,
			      checkin_date, checkout_date, status, type, COALESCE(remarks, '')
			  FROM engineer_schedules
			  WHERE engineer_email = $1
			  ORDER BY checkin_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, engineerEmail)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.EngineerSchedule
	for rows.Next() {
		var j models.EngineerSchedule
		var checkout sql.NullTime
		if err = rows.Scan(&j.JobID, &j.RegistrationNumber, &j.EngineerEmail,
			&j.CheckinDate, &checkout, &j.Status, &j.Type, &j.Remarks); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if checkout.Valid {
			j.CheckoutDate = &checkout.Time
		}
		result = append(result, &j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CloseJob завершает работу инженера: проставляет дату выписки и статус
// completed. Закрыть можно только собственную незавершённую работу.
func (s *Storage) CloseJob(ctx context.Context, jobID int, engineerEmail string, checkout time.Time) error {
	const op = "storage.CloseJob"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE engineer_schedules
			  SET checkout_date = $1, status = 'completed'
			  WHERE job_id = $2 AND engineer_email = $3
			      AND status IN ('pending', 'in_progress')`
	res, err := s.DB.ExecContext(ctx, query, checkout, jobID, engineerEmail)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrJobNotFound)
	}
	return nil
}
