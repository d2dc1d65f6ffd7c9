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

func TestStorage_CreateAirport_Duplicate(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")

	err := storage.CreateAirport(context.Background(), models.Airport{
		Code: "BLR", City: "Bengaluru", Country: "India", Name: "Kempegowda",
	})
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}

func TestStorage_CreateRoute_DuplicatePair(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")
	factory.CreateAirport(t, "DEL", "Delhi", "India", "Indira Gandhi")
	factory.CreateRoute(t, "BLR", "DEL", 180)

	_, err := storage.CreateRoute(context.Background(), models.Route{
		SourceAirportCode: "BLR", DestinationAirportCode: "DEL", ApprovedCapacity: 200,
	})
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	// Обратное направление — другой маршрут.
	_, err = storage.CreateRoute(context.Background(), models.Route{
		SourceAirportCode: "DEL", DestinationAirportCode: "BLR", ApprovedCapacity: 200,
	})
	assert.NoError(t, err)
}

func TestStorage_UpdateRoute(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")
	factory.CreateAirport(t, "DEL", "Delhi", "India", "Indira Gandhi")
	factory.CreateAirport(t, "BOM", "Mumbai", "India", "Chhatrapati Shivaji")
	routeID := factory.CreateRoute(t, "BLR", "DEL", 180)
	factory.CreateRoute(t, "BOM", "DEL", 220)

	t.Run("update persists new pair and capacity", func(t *testing.T) {
		err := storage.UpdateRoute(context.Background(), models.Route{
			ID: routeID, SourceAirportCode: "BLR", DestinationAirportCode: "BOM", ApprovedCapacity: 200,
		})
		require.NoError(t, err)

		route, err := storage.GetRoute(context.Background(), routeID)
		require.NoError(t, err)
		assert.Equal(t, "BOM", route.DestinationAirportCode)
		assert.Equal(t, 200, route.ApprovedCapacity)
	})

	t.Run("update onto existing pair conflicts", func(t *testing.T) {
		err := storage.UpdateRoute(context.Background(), models.Route{
			ID: routeID, SourceAirportCode: "BOM", DestinationAirportCode: "DEL", ApprovedCapacity: 200,
		})
		assert.True(t, errors.Is(err, ErrAlreadyExists))
	})

	t.Run("unknown route", func(t *testing.T) {
		err := storage.UpdateRoute(context.Background(), models.Route{
			ID: 9999, SourceAirportCode: "BLR", DestinationAirportCode: "DEL", ApprovedCapacity: 200,
		})
		assert.True(t, errors.Is(err, ErrRouteNotFound))
	})
}

func TestStorage_DeleteRoute(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")
	factory.CreateAirport(t, "DEL", "Delhi", "India", "Indira Gandhi")
	factory.CreateAircraft(t, "VT-EXA", models.AircraftStatusActive)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("delete succeeds without flights", func(t *testing.T) {
		routeID := factory.CreateRoute(t, "BLR", "DEL", 180)

		require.NoError(t, storage.DeleteRoute(context.Background(), routeID))

		_, err := storage.GetRoute(context.Background(), routeID)
		assert.True(t, errors.Is(err, ErrRouteNotFound))
	})

	t.Run("route with flights is not deletable", func(t *testing.T) {
		routeID := factory.CreateRoute(t, "DEL", "BLR", 180)
		factory.CreateFlight(t, "AS101", date, routeID, "VT-EXA")

		err := storage.DeleteRoute(context.Background(), routeID)
		assert.True(t, errors.Is(err, ErrRouteInUse))

		// Маршрут остался на месте
		_, err = storage.GetRoute(context.Background(), routeID)
		assert.NoError(t, err)
	})

	t.Run("unknown route", func(t *testing.T) {
		err := storage.DeleteRoute(context.Background(), 9999)
		assert.True(t, errors.Is(err, ErrRouteNotFound))
	})
}

func TestStorage_TopRoutesByCapacity(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")
	factory.CreateAirport(t, "DEL", "Delhi", "India", "Indira Gandhi")
	factory.CreateAirport(t, "BOM", "Mumbai", "India", "Chhatrapati Shivaji")
	factory.CreateRoute(t, "BLR", "DEL", 150)
	factory.CreateRoute(t, "BOM", "DEL", 300)
	factory.CreateRoute(t, "BLR", "BOM", 220)

	routes, err := storage.TopRoutesByCapacity(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, 300, routes[0].ApprovedCapacity)
	assert.Equal(t, 220, routes[1].ApprovedCapacity)
}

func TestStorage_CountAircraftByStatus(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAircraft(t, "VT-ONE", models.AircraftStatusActive)
	factory.CreateAircraft(t, "VT-TWO", models.AircraftStatusActive)
	factory.CreateAircraft(t, "VT-MNT", models.AircraftStatusMaintenance)

	active, err := storage.CountAircraftByStatus(context.Background(), models.AircraftStatusActive)
	require.NoError(t, err)
	assert.Equal(t, 2, active)

	maintenance, err := storage.CountAircraftByStatus(context.Background(), models.AircraftStatusMaintenance)
	require.NoError(t, err)
	assert.Equal(t, 1, maintenance)

	retired, err := storage.CountAircraftByStatus(context.Background(), models.AircraftStatusRetired)
	require.NoError(t, err)
	assert.Zero(t, retired)
}

func TestStorage_UpdateAircraft_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	err := storage.UpdateAircraft(context.Background(), models.Aircraft{
		RegistrationNumber: "VT-NONE",
		Company:            "Airbus",
		Model:              "A320neo",
		Capacity:           186,
		Status:             models.AircraftStatusActive,
	})
	assert.True(t, errors.Is(err, ErrAircraftNotFound))
}

func TestStorage_DeleteAircraft(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")
	factory.CreateAirport(t, "DEL", "Delhi", "India", "Indira Gandhi")
	routeID := factory.CreateRoute(t, "BLR", "DEL", 180)
	factory.CreateUser(t, models.UserTypeCrew, "pilot@airline.com", "Pilot", "hash")
	factory.CreateUser(t, models.UserTypeEngineer, "eng@airline.com", "Engineer", "hash")

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("delete succeeds without dependents", func(t *testing.T) {
		factory.CreateAircraft(t, "VT-FREE", models.AircraftStatusActive)

		err := storage.DeleteAircraft(context.Background(), "VT-FREE")
		require.NoError(t, err)

		_, err = storage.GetAircraft(context.Background(), "VT-FREE")
		assert.True(t, errors.Is(err, ErrAircraftNotFound))
	})

	t.Run("unknown aircraft", func(t *testing.T) {
		err := storage.DeleteAircraft(context.Background(), "VT-NONE")
		assert.True(t, errors.Is(err, ErrAircraftNotFound))
	})

	t.Run("blocked by flights", func(t *testing.T) {
		factory.CreateAircraft(t, "VT-FLT", models.AircraftStatusActive)
		factory.CreateFlight(t, "AS101", date, routeID, "VT-FLT")

		err := storage.DeleteAircraft(context.Background(), "VT-FLT")

		var depErr *DependencyError
		require.True(t, errors.As(err, &depErr))
		assert.Equal(t, "flights", depErr.Category)
		assert.Equal(t, 1, depErr.Count)

		// Судно осталось на месте.
		_, err = storage.GetAircraft(context.Background(), "VT-FLT")
		assert.NoError(t, err)
	})

	t.Run("crew schedules counted through flights", func(t *testing.T) {
		factory.CreateAircraft(t, "VT-CRW", models.AircraftStatusActive)
		factory.CreateFlight(t, "AS202", date, routeID, "VT-CRW")
		require.NoError(t, storage.AssignCrew(context.Background(), models.CrewAssignment{
			FlightNumber:  "AS202",
			Date:          date,
			DepartureTime: "09:30",
			CrewEmail:     "pilot@airline.com",
		}))

		err := storage.DeleteAircraft(context.Background(), "VT-CRW")

		// Порядок проверки фиксирован: рейсы сообщаются раньше назначений.
		var depErr *DependencyError
		require.True(t, errors.As(err, &depErr))
		assert.Equal(t, "flights", depErr.Category)
	})

	t.Run("blocked by engineer schedules", func(t *testing.T) {
		factory.CreateAircraft(t, "VT-ENG", models.AircraftStatusActive)
		factory.CreateEngineerJob(t, "VT-ENG", "eng@airline.com")

		err := storage.DeleteAircraft(context.Background(), "VT-ENG")

		var depErr *DependencyError
		require.True(t, errors.As(err, &depErr))
		assert.Equal(t, "engineer_schedules", depErr.Category)
		assert.Equal(t, 1, depErr.Count)
	})

	t.Run("completed job still blocks deletion", func(t *testing.T) {
		factory.CreateAircraft(t, "VT-HIS", models.AircraftStatusActive)
		jobID := factory.CreateEngineerJob(t, "VT-HIS", "eng@airline.com")
		require.NoError(t, storage.CloseJob(context.Background(), jobID, "eng@airline.com", time.Now().UTC()))

		err := storage.DeleteAircraft(context.Background(), "VT-HIS")

		var depErr *DependencyError
		require.True(t, errors.As(err, &depErr))
		assert.Equal(t, "engineer_schedules", depErr.Category)
	})
}

func TestStorage_DeleteAircraft_ConcurrentInsert(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateAirport(t, "BLR", "Bengaluru", "India", "Kempegowda")
	factory.CreateAirport(t, "DEL", "Delhi", "India", "Indira Gandhi")
	routeID := factory.CreateRoute(t, "BLR", "DEL", 180)
	factory.CreateAircraft(t, "VT-RACE", models.AircraftStatusActive)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	deleteErr := make(chan error, 1)
	insertErr := make(chan error, 1)
	go func() {
		deleteErr <- storage.DeleteAircraft(context.Background(), "VT-RACE")
	}()
	go func() {
		insertErr <- storage.CreateFlight(context.Background(), models.Flight{
			FlightNumber:         "AS999",
			Date:                 date,
			RouteID:              routeID,
			DepartureTime:        "09:30",
			ArrivalTime:          "12:15",
			AircraftRegistration: "VT-RACE",
		})
	}()

	delErr := <-deleteErr
	insErr := <-insertErr

	// Какой бы порядок ни выиграла гонка, осиротевший рейс невозможен:
	// либо удаление отклонено зависимостью, либо вставка упала на FK.
	var aircraftCount, flightCount int
	require.NoError(t, storage.DB.QueryRow(
		`SELECT COUNT(*) FROM aircraft WHERE registration_number = 'VT-RACE'`).Scan(&aircraftCount))
	require.NoError(t, storage.DB.QueryRow(
		`SELECT COUNT(*) FROM flights WHERE aircraft_registration = 'VT-RACE'`).Scan(&flightCount))

	if flightCount > 0 {
		assert.Equal(t, 1, aircraftCount, "flight exists, aircraft must too")
		assert.Error(t, delErr)
		assert.NoError(t, insErr)
	} else {
		assert.Error(t, insErr)
	}
}
