// Package schedule содержит логику бизнес-уровня планирования рейсов
// и назначения экипажа.
package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/aerosync-io/aerosync/internal/models"
)

// ErrAircraftNotActive возвращается при попытке поставить в расписание
// судно, выведенное из эксплуатации или находящееся на обслуживании.
var ErrAircraftNotActive = errors.New("aircraft is not active")

// Repository описывает контракт хранилища для операций планирования.
type Repository interface {
	CreateFlight(ctx context.Context, flight models.Flight) error
	GetFlight(ctx context.Context, flightNumber string, date time.Time) (*models.Flight, error)
	ListFlights(ctx context.Context) ([]*models.Flight, error)
	UpdateFlight(ctx context.Context, flightNumber string, date time.Time, updated models.Flight) error
	DeleteFlight(ctx context.Context, flightNumber string, date time.Time) error
	AssignCrew(ctx context.Context, assignment models.CrewAssignment) error
	ListCrewForFlight(ctx context.Context, flightNumber string, date time.Time) ([]*models.CrewMember, error)
	ListFlightsForCrew(ctx context.Context, crewEmail string) ([]*models.CrewFlight, error)
	ListRecentFlights(ctx context.Context, limit int) ([]*models.DashboardFlight, error)
	FlightStats(ctx context.Context, now time.Time) (*models.FlightStats, error)

	GetRoute(ctx context.Context, routeID int) (*models.Route, error)
	GetAircraft(ctx context.Context, registration string) (*models.Aircraft, error)
	CountAircraftByStatus(ctx context.Context, status models.AircraftStatus) (int, error)
	GetUserByEmail(ctx context.Context, userType models.UserType, email string) (*models.User, error)
}

// Service реализует сценарии планирования.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateFlight заводит рейс: маршрут должен существовать, судно —
// существовать и находиться в статусе active.
func (s *Service) CreateFlight(ctx context.Context, flight models.Flight) error {
	if _, err := s.repo.GetRoute(ctx, flight.RouteID); err != nil {
		return err
	}
	aircraft, err := s.repo.GetAircraft(ctx, flight.AircraftRegistration)
	if err != nil {
		return err
	}
	if aircraft.Status != models.AircraftStatusActive {
		return ErrAircraftNotActive
	}
	return s.repo.CreateFlight(ctx, flight)
}

// GetFlight возвращает рейс по номеру и дате.
func (s *Service) GetFlight(ctx context.Context, flightNumber string, date time.Time) (*models.Flight, error) {
	return s.repo.GetFlight(ctx, flightNumber, date)
}

// ListFlights возвращает все рейсы.
func (s *Service) ListFlights(ctx context.Context) ([]*models.Flight, error) {
	return s.repo.ListFlights(ctx)
}

// FlightUpdate перечисляет изменяемые поля рейса; nil-поле не меняется.
type FlightUpdate struct {
	Date                 *time.Time
	RouteID              *int
	DepartureTime        *string
	ArrivalTime          *string
	AircraftRegistration *string
}

// UpdateFlight применяет частичное обновление к существующему рейсу.
// Новый маршрут должен существовать, новое судно — существовать
// и находиться в статусе active; перенос на занятую дату отклоняется.
func (s *Service) UpdateFlight(ctx context.Context, flightNumber string, date time.Time, upd FlightUpdate) (*models.Flight, error) {
	flight, err := s.repo.GetFlight(ctx, flightNumber, date)
	if err != nil {
		return nil, err
	}
	if upd.RouteID != nil {
		if _, err := s.repo.GetRoute(ctx, *upd.RouteID); err != nil {
			return nil, err
		}
		flight.RouteID = *upd.RouteID
	}
	if upd.AircraftRegistration != nil {
		aircraft, err := s.repo.GetAircraft(ctx, *upd.AircraftRegistration)
		if err != nil {
			return nil, err
		}
		if aircraft.Status != models.AircraftStatusActive {
			return nil, ErrAircraftNotActive
		}
		flight.AircraftRegistration = *upd.AircraftRegistration
	}
	if upd.Date != nil {
		flight.Date = *upd.Date
	}
	if upd.DepartureTime != nil {
		flight.DepartureTime = *upd.DepartureTime
	}
	if upd.ArrivalTime != nil {
		flight.ArrivalTime = *upd.ArrivalTime
	}
	if err := s.repo.UpdateFlight(ctx, flightNumber, date, *flight); err != nil {
		return nil, err
	}
	return flight, nil
}

// RemoveFlight удаляет рейс вместе с назначениями экипажа.
func (s *Service) RemoveFlight(ctx context.Context, flightNumber string, date time.Time) error {
	return s.repo.DeleteFlight(ctx, flightNumber, date)
}

// FlightCrew возвращает экипаж, назначенный на существующий рейс.
func (s *Service) FlightCrew(ctx context.Context, flightNumber string, date time.Time) ([]*models.CrewMember, error) {
	if _, err := s.repo.GetFlight(ctx, flightNumber, date); err != nil {
		return nil, err
	}
	return s.repo.ListCrewForFlight(ctx, flightNumber, date)
}

// AssignCrew назначает члена экипажа на существующий рейс.
// Время вылета в назначении берётся из самого рейса.
func (s *Service) AssignCrew(ctx context.Context, flightNumber string, date time.Time, crewEmail string) error {
	flight, err := s.repo.GetFlight(ctx, flightNumber, date)
	if err != nil {
		return err
	}
	if _, err := s.repo.GetUserByEmail(ctx, models.UserTypeCrew, crewEmail); err != nil {
		return err
	}
	return s.repo.AssignCrew(ctx, models.CrewAssignment{
		FlightNumber:  flight.FlightNumber,
		Date:          flight.Date,
		DepartureTime: flight.DepartureTime,
		CrewEmail:     crewEmail,
	})
}

// MyFlights возвращает рейсы, на которые назначен член экипажа.
func (s *Service) MyFlights(ctx context.Context, crewEmail string) ([]*models.CrewFlight, error) {
	return s.repo.ListFlightsForCrew(ctx, crewEmail)
}

// Dashboard — сводка для панели диспетчера.
type Dashboard struct {
	RecentFlights         []*models.DashboardFlight
	FlightsInAir          int
	WeeklyFlights         int
	UtilizationRate       float64 // Доля активных судов, задействованных на этой неделе
	AircraftOnGround      int
	AircraftInMaintenance int
}

// Dashboard собирает сводку диспетчера на момент now.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	recent, err := s.repo.ListRecentFlights(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.FlightStats(ctx, now)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.CountAircraftByStatus(ctx, models.AircraftStatusActive)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.repo.CountAircraftByStatus(ctx, models.AircraftStatusMaintenance)
	if err != nil {
		return nil, err
	}

	utilization := 0.0
	if active > 0 {
		utilization = float64(stats.AircraftUsedWeekly) / float64(active)
	}
	onGround := active - stats.AircraftInAir
	if onGround < 0 {
		onGround = 0
	}
	return &Dashboard{
		RecentFlights:         recent,
		FlightsInAir:          stats.FlightsInAir,
		WeeklyFlights:         stats.WeeklyFlights,
		UtilizationRate:       utilization,
		AircraftOnGround:      onGround,
		AircraftInMaintenance: maintenance,
	}, nil
}

// CrewFlightInfo — рейс члена экипажа с рассчитанной длительностью.
type CrewFlightInfo struct {
	*models.CrewFlight
	DurationMinutes int
}

// NextFlight — ближайший рейс члена экипажа.
type NextFlight struct {
	CrewFlightInfo
	MinutesToDeparture int
}

// CrewDashboard — сводка для панели члена экипажа.
type CrewDashboard struct {
	UpcomingFlights     []CrewFlightInfo
	TotalHoursCompleted float64
	Next                *NextFlight
}

// CrewDashboard собирает сводку члена экипажа на момент now: ближайшие
// рейсы (до пяти), налёт по завершённым рейсам и следующий вылет.
func (s *Service) CrewDashboard(ctx context.Context, crewEmail string, now time.Time) (*CrewDashboard, error) {
	flights, err := s.repo.ListFlightsForCrew(ctx, crewEmail)
	if err != nil {
		return nil, err
	}
	now = now.UTC()

	dash := &CrewDashboard{}
	totalMinutes := 0
	for _, f := range flights {
		dep, arr := flightWindow(f.Date, f.DepartureTime, f.ArrivalTime)
		duration := int(arr.Sub(dep).Minutes())
		switch {
		case arr.Before(now):
			totalMinutes += duration
		case !dep.Before(now):
			info := CrewFlightInfo{CrewFlight: f, DurationMinutes: duration}
			if len(dash.UpcomingFlights) < 5 {
				dash.UpcomingFlights = append(dash.UpcomingFlights, info)
			}
			if dash.Next == nil || dep.Before(flightWindowStart(dash.Next.CrewFlight)) {
				dash.Next = &NextFlight{
					CrewFlightInfo:     info,
					MinutesToDeparture: int(dep.Sub(now).Minutes()),
				}
			}
		}
	}
	dash.TotalHoursCompleted = float64(totalMinutes) / 60.0
	return dash, nil
}

// flightWindow возвращает моменты вылета и прилёта рейса в UTC.
// Прилёт раньше вылета трактуется как прилёт на следующий день.
func flightWindow(date time.Time, departure, arrival string) (time.Time, time.Time) {
	dep := combineDayTime(date, departure)
	arr := combineDayTime(date, arrival)
	if !arr.After(dep) {
		arr = arr.AddDate(0, 0, 1)
	}
	return dep, arr
}

func flightWindowStart(f *models.CrewFlight) time.Time {
	return combineDayTime(f.Date, f.DepartureTime)
}

func combineDayTime(date time.Time, hhmm string) time.Time {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}
