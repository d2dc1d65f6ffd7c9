package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerosync-io/aerosync/internal/models"
)

func TestStorage_MaintenanceJobs(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAircraft(t, "VT-EXA", models.AircraftStatusMaintenance)
	factory.CreateUser(t, models.UserTypeEngineer, "eng@airline.com", "Engineer", "hash")
	factory.CreateUser(t, models.UserTypeEngineer, "other@airline.com", "Other Engineer", "hash")

	jobID := factory.CreateEngineerJob(t, "VT-EXA", "eng@airline.com")

	t.Run("created job is pending without checkout", func(t *testing.T) {
		job, err := storage.GetJob(context.Background(), jobID)
		require.NoError(t, err)
		assert.Equal(t, models.MaintenanceStatusPending, job.Status)
		assert.Equal(t, models.MaintenanceTypeInspection, job.Type)
		assert.Nil(t, job.CheckoutDate)
	})

	t.Run("listed only for owning engineer", func(t *testing.T) {
		jobs, err := storage.ListJobsForEngineer(context.Background(), "eng@airline.com")
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, jobID, jobs[0].JobID)

		jobs, err = storage.ListJobsForEngineer(context.Background(), "other@airline.com")
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})

	t.Run("close by another engineer is rejected", func(t *testing.T) {
		err := storage.CloseJob(context.Background(), jobID, "other@airline.com", time.Now().UTC())
		assert.True(t, errors.Is(err, ErrJobNotFound))
	})

	t.Run("close by owner completes job", func(t *testing.T) {
		checkout := time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC)
		require.NoError(t, storage.CloseJob(context.Background(), jobID, "eng@airline.com", checkout))

		job, err := storage.GetJob(context.Background(), jobID)
		require.NoError(t, err)
		assert.Equal(t, models.MaintenanceStatusCompleted, job.Status)
		require.NotNil(t, job.CheckoutDate)
		assert.Equal(t, checkout, job.CheckoutDate.UTC())
	})

	t.Run("completed job cannot be closed again", func(t *testing.T) {
		err := storage.CloseJob(context.Background(), jobID, "eng@airline.com", time.Now().UTC())
		assert.True(t, errors.Is(err, ErrJobNotFound))
	})

	t.Run("unknown job", func(t *testing.T) {
		_, err := storage.GetJob(context.Background(), 9999)
		assert.True(t, errors.Is(err, ErrJobNotFound))
	})
}
