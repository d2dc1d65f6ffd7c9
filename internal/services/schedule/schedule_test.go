package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aerosync-io/aerosync/internal/models"
	"github.com/aerosync-io/aerosync/internal/services/schedule"
	"github.com/aerosync-io/aerosync/internal/storage/repository"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateFlight(ctx context.Context, flight models.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *RepoMock) GetFlight(ctx context.Context, flightNumber string, date time.Time) (*models.Flight, error) {
	args := m.Called(ctx, flightNumber, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *RepoMock) ListFlights(ctx context.Context) ([]*models.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Flight), args.Error(1)
}

func (m *RepoMock) UpdateFlight(ctx context.Context, flightNumber string, date time.Time, updated models.Flight) error {
	args := m.Called(ctx, flightNumber, date, updated)
	return args.Error(0)
}

func (m *RepoMock) DeleteFlight(ctx context.Context, flightNumber string, date time.Time) error {
	args := m.Called(ctx, flightNumber, date)
	return args.Error(0)
}

func (m *RepoMock) ListCrewForFlight(ctx context.Context, flightNumber string, date time.Time) ([]*models.CrewMember, error) {
	args := m.Called(ctx, flightNumber, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CrewMember), args.Error(1)
}

func (m *RepoMock) ListRecentFlights(ctx context.Context, limit int) ([]*models.DashboardFlight, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DashboardFlight), args.Error(1)
}

func (m *RepoMock) FlightStats(ctx context.Context, now time.Time) (*models.FlightStats, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightStats), args.Error(1)
}

func (m *RepoMock) CountAircraftByStatus(ctx context.Context, status models.AircraftStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) AssignCrew(ctx context.Context, assignment models.CrewAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *RepoMock) ListFlightsForCrew(ctx context.Context, crewEmail string) ([]*models.CrewFlight, error) {
	args := m.Called(ctx, crewEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CrewFlight), args.Error(1)
}

func (m *RepoMock) GetRoute(ctx context.Context, routeID int) (*models.Route, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Route), args.Error(1)
}

func (m *RepoMock) GetAircraft(ctx context.Context, registration string) (*models.Aircraft, error) {
	args := m.Called(ctx, registration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aircraft), args.Error(1)
}

func (m *RepoMock) GetUserByEmail(ctx context.Context, userType models.UserType, email string) (*models.User, error) {
	args := m.Called(ctx, userType, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestScheduleService_CreateFlight(t *testing.T) {
	route := &models.Route{ID: 1, SourceAirportCode: "BLR", DestinationAirportCode: "DEL"}
	activeAircraft := &models.Aircraft{RegistrationNumber: "VT-EXA", Status: models.AircraftStatusActive}
	retiredAircraft := &models.Aircraft{RegistrationNumber: "VT-OLD", Status: models.AircraftStatusRetired}

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		flight     models.Flight
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "successful creation",
			flight: models.Flight{
				FlightNumber: "AS101", Date: date, RouteID: 1,
				DepartureTime: "09:30", ArrivalTime: "12:15",
				AircraftRegistration: "VT-EXA",
			},
			setupMocks: func(r *RepoMock) {
				r.On("GetRoute", mock.Anything, 1).Return(route, nil).Once()
				r.On("GetAircraft", mock.Anything, "VT-EXA").Return(activeAircraft, nil).Once()
				r.On("CreateFlight", mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:   "unknown route",
			flight: models.Flight{FlightNumber: "AS101", Date: date, RouteID: 99, AircraftRegistration: "VT-EXA"},
			setupMocks: func(r *RepoMock) {
				r.On("GetRoute", mock.Anything, 99).Return(nil, repository.ErrRouteNotFound).Once()
			},
			wantErr: repository.ErrRouteNotFound,
		},
		{
			name:   "aircraft not active",
			flight: models.Flight{FlightNumber: "AS101", Date: date, RouteID: 1, AircraftRegistration: "VT-OLD"},
			setupMocks: func(r *RepoMock) {
				r.On("GetRoute", mock.Anything, 1).Return(route, nil).Once()
				r.On("GetAircraft", mock.Anything, "VT-OLD").Return(retiredAircraft, nil).Once()
			},
			wantErr: schedule.ErrAircraftNotActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := schedule.New(repo)
			err := svc.CreateFlight(context.Background(), tt.flight)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestScheduleService_UpdateFlight(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	existing := &models.Flight{
		FlightNumber: "AS101", Date: date, RouteID: 1,
		DepartureTime: "09:30", ArrivalTime: "12:15",
		AircraftRegistration: "VT-EXA",
	}
	route2 := &models.Route{ID: 2, SourceAirportCode: "BOM", DestinationAirportCode: "DEL"}
	maintenanceAircraft := &models.Aircraft{RegistrationNumber: "VT-MNT", Status: models.AircraftStatusMaintenance}

	intPtr := func(n int) *int { return &n }
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name       string
		upd        schedule.FlightUpdate
		setupMocks func(r *RepoMock)
		check      func(t *testing.T, flight *models.Flight)
		wantErr    error
	}{
		{
			name: "date move keeps original key",
			upd:  schedule.FlightUpdate{Date: &newDate},
			setupMocks: func(r *RepoMock) {
				copied := *existing
				r.On("GetFlight", mock.Anything, "AS101", date).Return(&copied, nil).Once()
				r.On("UpdateFlight", mock.Anything, "AS101", date, mock.MatchedBy(func(f models.Flight) bool {
					return f.Date.Equal(newDate)
				})).Return(nil).Once()
			},
			check: func(t *testing.T, flight *models.Flight) {
				assert.True(t, flight.Date.Equal(newDate))
			},
		},
		{
			name: "route change verified",
			upd:  schedule.FlightUpdate{RouteID: intPtr(2)},
			setupMocks: func(r *RepoMock) {
				copied := *existing
				r.On("GetFlight", mock.Anything, "AS101", date).Return(&copied, nil).Once()
				r.On("GetRoute", mock.Anything, 2).Return(route2, nil).Once()
				r.On("UpdateFlight", mock.Anything, "AS101", date, mock.MatchedBy(func(f models.Flight) bool {
					return f.RouteID == 2
				})).Return(nil).Once()
			},
			check: func(t *testing.T, flight *models.Flight) {
				assert.Equal(t, 2, flight.RouteID)
			},
		},
		{
			name: "new aircraft on maintenance",
			upd:  schedule.FlightUpdate{AircraftRegistration: strPtr("VT-MNT")},
			setupMocks: func(r *RepoMock) {
				copied := *existing
				r.On("GetFlight", mock.Anything, "AS101", date).Return(&copied, nil).Once()
				r.On("GetAircraft", mock.Anything, "VT-MNT").Return(maintenanceAircraft, nil).Once()
			},
			wantErr: schedule.ErrAircraftNotActive,
		},
		{
			name: "unknown flight",
			upd:  schedule.FlightUpdate{Date: &newDate},
			setupMocks: func(r *RepoMock) {
				r.On("GetFlight", mock.Anything, "AS101", date).Return(nil, repository.ErrFlightNotFound).Once()
			},
			wantErr: repository.ErrFlightNotFound,
		},
		{
			name: "target slot occupied",
			upd:  schedule.FlightUpdate{Date: &newDate},
			setupMocks: func(r *RepoMock) {
				copied := *existing
				r.On("GetFlight", mock.Anything, "AS101", date).Return(&copied, nil).Once()
				r.On("UpdateFlight", mock.Anything, "AS101", date, mock.Anything).
					Return(repository.ErrAlreadyExists).Once()
			},
			wantErr: repository.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := schedule.New(repo)
			flight, err := svc.UpdateFlight(context.Background(), "AS101", date, tt.upd)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				assert.Nil(t, flight)
			} else {
				assert.NoError(t, err)
				tt.check(t, flight)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestScheduleService_FlightCrew_UnknownFlight(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	repo.On("GetFlight", mock.Anything, "AS101", date).Return(nil, repository.ErrFlightNotFound).Once()

	svc := schedule.New(repo)
	crew, err := svc.FlightCrew(context.Background(), "AS101", date)

	assert.True(t, errors.Is(err, repository.ErrFlightNotFound))
	assert.Nil(t, crew)
	repo.AssertExpectations(t)
}

func TestScheduleService_Dashboard(t *testing.T) {
	now := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
	recent := []*models.DashboardFlight{
		{CrewFlight: models.CrewFlight{Flight: models.Flight{FlightNumber: "AS101"}}, ApprovedCapacity: 180},
	}
	stats := &models.FlightStats{
		FlightsInAir:       2,
		AircraftInAir:      2,
		WeeklyFlights:      14,
		AircraftUsedWeekly: 6,
	}

	repo := new(RepoMock)
	repo.On("ListRecentFlights", mock.Anything, 10).Return(recent, nil).Once()
	repo.On("FlightStats", mock.Anything, now).Return(stats, nil).Once()
	repo.On("CountAircraftByStatus", mock.Anything, models.AircraftStatusActive).Return(8, nil).Once()
	repo.On("CountAircraftByStatus", mock.Anything, models.AircraftStatusMaintenance).Return(3, nil).Once()

	svc := schedule.New(repo)
	dash, err := svc.Dashboard(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, recent, dash.RecentFlights)
	assert.Equal(t, 2, dash.FlightsInAir)
	assert.Equal(t, 14, dash.WeeklyFlights)
	assert.InDelta(t, 0.75, dash.UtilizationRate, 1e-9)
	assert.Equal(t, 6, dash.AircraftOnGround)
	assert.Equal(t, 3, dash.AircraftInMaintenance)
	repo.AssertExpectations(t)
}

func TestScheduleService_Dashboard_NoActiveAircraft(t *testing.T) {
	now := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
	stats := &models.FlightStats{FlightsInAir: 1, AircraftInAir: 1}

	repo := new(RepoMock)
	repo.On("ListRecentFlights", mock.Anything, 10).Return([]*models.DashboardFlight{}, nil).Once()
	repo.On("FlightStats", mock.Anything, now).Return(stats, nil).Once()
	repo.On("CountAircraftByStatus", mock.Anything, models.AircraftStatusActive).Return(0, nil).Once()
	repo.On("CountAircraftByStatus", mock.Anything, models.AircraftStatusMaintenance).Return(0, nil).Once()

	svc := schedule.New(repo)
	dash, err := svc.Dashboard(context.Background(), now)

	assert.NoError(t, err)
	assert.Zero(t, dash.UtilizationRate)
	// В воздухе судов больше, чем активных: на земле не бывает меньше нуля
	assert.Zero(t, dash.AircraftOnGround)
	repo.AssertExpectations(t)
}

func TestScheduleService_CrewDashboard(t *testing.T) {
	now := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)

	crewFlight := func(number string, date time.Time, dep, arr string) *models.CrewFlight {
		return &models.CrewFlight{
			Flight: models.Flight{
				FlightNumber:  number,
				Date:          date,
				DepartureTime: dep,
				ArrivalTime:   arr,
			},
			SourceAirportCode:      "BLR",
			DestinationAirportCode: "DEL",
		}
	}

	past := crewFlight("AS100", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "09:00", "11:30")
	// Ночной рейс: прилёт раньше вылета означает прилёт на следующий день
	overnight := crewFlight("AS205", time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), "23:00", "01:00")
	soon := crewFlight("AS101", time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), "15:00", "17:00")
	later := crewFlight("AS102", time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), "09:00", "12:00")

	repo := new(RepoMock)
	repo.On("ListFlightsForCrew", mock.Anything, "pilot@airline.com").
		Return([]*models.CrewFlight{later, past, overnight, soon}, nil).Once()

	svc := schedule.New(repo)
	dash, err := svc.CrewDashboard(context.Background(), "pilot@airline.com", now)

	assert.NoError(t, err)
	// 150 минут + 120 минут ночного рейса
	assert.InDelta(t, 4.5, dash.TotalHoursCompleted, 1e-9)
	assert.Len(t, dash.UpcomingFlights, 2)
	if assert.NotNil(t, dash.Next) {
		assert.Equal(t, "AS101", dash.Next.FlightNumber)
		assert.Equal(t, 180, dash.Next.MinutesToDeparture)
		assert.Equal(t, 120, dash.Next.DurationMinutes)
	}
	repo.AssertExpectations(t)
}

func TestScheduleService_CrewDashboard_CapsUpcoming(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	flights := make([]*models.CrewFlight, 0, 7)
	for day := 2; day <= 8; day++ {
		flights = append(flights, &models.CrewFlight{
			Flight: models.Flight{
				FlightNumber:  "AS10" + string(rune('0'+day)),
				Date:          time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC),
				DepartureTime: "09:00",
				ArrivalTime:   "11:00",
			},
		})
	}

	repo := new(RepoMock)
	repo.On("ListFlightsForCrew", mock.Anything, "pilot@airline.com").Return(flights, nil).Once()

	svc := schedule.New(repo)
	dash, err := svc.CrewDashboard(context.Background(), "pilot@airline.com", now)

	assert.NoError(t, err)
	assert.Len(t, dash.UpcomingFlights, 5)
	assert.Zero(t, dash.TotalHoursCompleted)
	repo.AssertExpectations(t)
}

func TestScheduleService_AssignCrew(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	flight := &models.Flight{
		FlightNumber:  "AS101",
		Date:          date,
		DepartureTime: "09:30",
	}
	crewMember := &models.User{ID: 4, Email: "pilot@airline.com", UserType: models.UserTypeCrew}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "departure time taken from flight",
			setupMocks: func(r *RepoMock) {
				r.On("GetFlight", mock.Anything, "AS101", date).Return(flight, nil).Once()
				r.On("GetUserByEmail", mock.Anything, models.UserTypeCrew, "pilot@airline.com").Return(crewMember, nil).Once()
				r.On("AssignCrew", mock.Anything, mock.MatchedBy(func(a models.CrewAssignment) bool {
					return a.DepartureTime == "09:30" && a.CrewEmail == "pilot@airline.com"
				})).Return(nil).Once()
			},
		},
		{
			name: "unknown flight",
			setupMocks: func(r *RepoMock) {
				r.On("GetFlight", mock.Anything, "AS101", date).Return(nil, repository.ErrFlightNotFound).Once()
			},
			wantErr: repository.ErrFlightNotFound,
		},
		{
			name: "unknown crew member",
			setupMocks: func(r *RepoMock) {
				r.On("GetFlight", mock.Anything, "AS101", date).Return(flight, nil).Once()
				r.On("GetUserByEmail", mock.Anything, models.UserTypeCrew, "pilot@airline.com").
					Return(nil, repository.ErrUserNotFound).Once()
			},
			wantErr: repository.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := schedule.New(repo)
			err := svc.AssignCrew(context.Background(), "AS101", date, "pilot@airline.com")

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}
