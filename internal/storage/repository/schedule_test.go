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

func TestStorage_Flights(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")
	factory.CreateAirport(t, "DEL", "Delhi", "India", "Indira Gandhi")
	routeID := factory.CreateRoute(t, "BLR", "DEL", 180)
	factory.CreateAircraft(t, "VT-EXA", models.AircraftStatusActive)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("create and read back flight times", func(t *testing.T) {
		require.NoError(t, storage.CreateFlight(context.Background(), models.Flight{
			FlightNumber:         "AS101",
			Date:                 date,
			RouteID:              routeID,
			DepartureTime:        "09:30",
			ArrivalTime:          "12:15",
			AircraftRegistration: "VT-EXA",
		}))

		flight, err := storage.GetFlight(context.Background(), "AS101", date)
		require.NoError(t, err)
		assert.Equal(t, "09:30", flight.DepartureTime)
		assert.Equal(t, "12:15", flight.ArrivalTime)
		assert.Equal(t, "VT-EXA", flight.AircraftRegistration)
	})

	t.Run("same number on same date conflicts", func(t *testing.T) {
		err := storage.CreateFlight(context.Background(), models.Flight{
			FlightNumber:         "AS101",
			Date:                 date,
			RouteID:              routeID,
			DepartureTime:        "18:00",
			ArrivalTime:          "20:45",
			AircraftRegistration: "VT-EXA",
		})
		assert.True(t, errors.Is(err, ErrAlreadyExists))
	})

	t.Run("same number on another date is a new flight", func(t *testing.T) {
		err := storage.CreateFlight(context.Background(), models.Flight{
			FlightNumber:         "AS101",
			Date:                 date.AddDate(0, 0, 1),
			RouteID:              routeID,
			DepartureTime:        "09:30",
			ArrivalTime:          "12:15",
			AircraftRegistration: "VT-EXA",
		})
		assert.NoError(t, err)
	})

	t.Run("unknown flight", func(t *testing.T) {
		_, err := storage.GetFlight(context.Background(), "AS404", date)
		assert.True(t, errors.Is(err, ErrFlightNotFound))
	})
}

func TestStorage_UpdateFlight(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")
	factory.CreateAirport(t, "DEL", "Delhi", "India", "Indira Gandhi")
	routeID := factory.CreateRoute(t, "BLR", "DEL", 180)
	factory.CreateAircraft(t, "VT-EXA", models.AircraftStatusActive)
	factory.CreateUser(t, models.UserTypeCrew, "pilot@airline.com", "Pilot", "hash")

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	factory.CreateFlight(t, "AS101", date, routeID, "VT-EXA")
	require.NoError(t, storage.AssignCrew(context.Background(), models.CrewAssignment{
		FlightNumber:  "AS101",
		Date:          date,
		DepartureTime: "09:30",
		CrewEmail:     "pilot@airline.com",
	}))

	t.Run("date move cascades to crew schedules", func(t *testing.T) {
		err := storage.UpdateFlight(context.Background(), "AS101", date, models.Flight{
			FlightNumber:         "AS101",
			Date:                 newDate,
			RouteID:              routeID,
			DepartureTime:        "10:00",
			ArrivalTime:          "12:45",
			AircraftRegistration: "VT-EXA",
		})
		require.NoError(t, err)

		flight, err := storage.GetFlight(context.Background(), "AS101", newDate)
		require.NoError(t, err)
		assert.Equal(t, "10:00", flight.DepartureTime)

		_, err = storage.GetFlight(context.Background(), "AS101", date)
		assert.True(t, errors.Is(err, ErrFlightNotFound))

		// Назначение экипажа переехало вместе с рейсом
		flights, err := storage.ListFlightsForCrew(context.Background(), "pilot@airline.com")
		require.NoError(t, err)
		require.Len(t, flights, 1)
		assert.True(t, flights[0].Date.Equal(newDate))
	})

	t.Run("move onto occupied slot conflicts", func(t *testing.T) {
		factory.CreateFlight(t, "AS101", date, routeID, "VT-EXA")

		err := storage.UpdateFlight(context.Background(), "AS101", date, models.Flight{
			FlightNumber:         "AS101",
			Date:                 newDate,
			RouteID:              routeID,
			DepartureTime:        "09:30",
			ArrivalTime:          "12:15",
			AircraftRegistration: "VT-EXA",
		})
		assert.True(t, errors.Is(err, ErrAlreadyExists))
	})

	t.Run("unknown flight", func(t *testing.T) {
		err := storage.UpdateFlight(context.Background(), "AS404", date, models.Flight{
			FlightNumber:         "AS404",
			Date:                 date,
			RouteID:              routeID,
			DepartureTime:        "09:30",
			ArrivalTime:          "12:15",
			AircraftRegistration: "VT-EXA",
		})
		assert.True(t, errors.Is(err, ErrFlightNotFound))
	})
}

func TestStorage_DeleteFlight(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")
	factory.CreateAirport(t, "DEL", "Delhi", "India", "Indira Gandhi")
	routeID := factory.CreateRoute(t, "BLR", "DEL", 180)
	factory.CreateAircraft(t, "VT-EXA", models.AircraftStatusActive)
	factory.CreateUser(t, models.UserTypeCrew, "pilot@airline.com", "Pilot", "hash")

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	factory.CreateFlight(t, "AS101", date, routeID, "VT-EXA")
	require.NoError(t, storage.AssignCrew(context.Background(), models.CrewAssignment{
		FlightNumber:  "AS101",
		Date:          date,
		DepartureTime: "09:30",
		CrewEmail:     "pilot@airline.com",
	}))

	t.Run("delete removes flight and its assignments", func(t *testing.T) {
		require.NoError(t, storage.DeleteFlight(context.Background(), "AS101", date))

		_, err := storage.GetFlight(context.Background(), "AS101", date)
		assert.True(t, errors.Is(err, ErrFlightNotFound))

		flights, err := storage.ListFlightsForCrew(context.Background(), "pilot@airline.com")
		require.NoError(t, err)
		assert.Empty(t, flights)
	})

	t.Run("unknown flight", func(t *testing.T) {
		err := storage.DeleteFlight(context.Background(), "AS101", date)
		assert.True(t, errors.Is(err, ErrFlightNotFound))
	})
}

func TestStorage_ListCrewForFlight(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")
	factory.CreateAirport(t, "DEL", "Delhi", "India", "Indira Gandhi")
	routeID := factory.CreateRoute(t, "BLR", "DEL", 180)
	factory.CreateAircraft(t, "VT-EXA", models.AircraftStatusActive)

	_, err := storage.CreateUser(context.Background(), models.User{
		Email: "pilot@airline.com", Name: "Pilot", PasswordHash: "hash",
		UserType: models.UserTypeCrew, IsPilot: true,
	})
	require.NoError(t, err)
	_, err = storage.CreateUser(context.Background(), models.User{
		Email: "attendant@airline.com", Name: "Attendant", PasswordHash: "hash",
		UserType: models.UserTypeCrew,
	})
	require.NoError(t, err)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	factory.CreateFlight(t, "AS101", date, routeID, "VT-EXA")

	for _, email := range []string{"pilot@airline.com", "attendant@airline.com"} {
		require.NoError(t, storage.AssignCrew(context.Background(), models.CrewAssignment{
			FlightNumber:  "AS101",
			Date:          date,
			DepartureTime: "09:30",
			CrewEmail:     email,
		}))
	}

	crew, err := storage.ListCrewForFlight(context.Background(), "AS101", date)
	require.NoError(t, err)
	require.Len(t, crew, 2)
	assert.Equal(t, "attendant@airline.com", crew[0].Email)
	assert.False(t, crew[0].IsPilot)
	assert.Equal(t, "pilot@airline.com", crew[1].Email)
	assert.True(t, crew[1].IsPilot)

	t.Run("flight without crew", func(t *testing.T) {
		factory.CreateFlight(t, "AS202", date, routeID, "VT-EXA")

		crew, err := storage.ListCrewForFlight(context.Background(), "AS202", date)
		require.NoError(t, err)
		assert.Empty(t, crew)
	})
}

func TestStorage_CrewSchedules(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")
	factory.CreateAirport(t, "DEL", "Delhi", "India", "Indira Gandhi")
	routeID := factory.CreateRoute(t, "BLR", "DEL", 180)
	factory.CreateAircraft(t, "VT-EXA", models.AircraftStatusActive)
	factory.CreateUser(t, models.UserTypeCrew, "pilot@airline.com", "Pilot", "hash")

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	factory.CreateFlight(t, "AS101", date, routeID, "VT-EXA")

	assignment := models.CrewAssignment{
		FlightNumber:  "AS101",
		Date:          date,
		DepartureTime: "09:30",
		CrewEmail:     "pilot@airline.com",
	}
	require.NoError(t, storage.AssignCrew(context.Background(), assignment))

	t.Run("duplicate assignment conflicts", func(t *testing.T) {
		err := storage.AssignCrew(context.Background(), assignment)
		assert.True(t, errors.Is(err, ErrAlreadyExists))
	})

	t.Run("crew roster includes route airports", func(t *testing.T) {
		flights, err := storage.ListFlightsForCrew(context.Background(), "pilot@airline.com")
		require.NoError(t, err)
		require.Len(t, flights, 1)
		assert.Equal(t, "AS101", flights[0].FlightNumber)
		assert.Equal(t, "BLR", flights[0].SourceAirportCode)
		assert.Equal(t, "DEL", flights[0].DestinationAirportCode)
	})

	t.Run("other crew member has empty roster", func(t *testing.T) {
		flights, err := storage.ListFlightsForCrew(context.Background(), "other@airline.com")
		require.NoError(t, err)
		assert.Empty(t, flights)
	})
}
