// Package fleet содержит логику бизнес-уровня для управления парком:
// аэропорты, маршруты и воздушные суда.
package fleet

import (
	"context"
	"errors"
	"strings"

	"github.com/aerosync-io/aerosync/internal/models"
)

// ErrSameAirports возвращается при попытке создать маршрут,
// у которого совпадают аэропорты вылета и назначения.
var ErrSameAirports = errors.New("source and destination airports cannot be the same")

// Repository описывает контракт хранилища для операций парка.
type Repository interface {
	CreateAirport(ctx context.Context, airport models.Airport) error
	GetAirport(ctx context.Context, code string) (*models.Airport, error)
	ListAirports(ctx context.Context) ([]*models.Airport, error)

	CreateRoute(ctx context.Context, route models.Route) (int, error)
	GetRoute(ctx context.Context, routeID int) (*models.Route, error)
	ListRoutes(ctx context.Context) ([]*models.Route, error)
	UpdateRoute(ctx context.Context, route models.Route) error
	DeleteRoute(ctx context.Context, routeID int) error
	TopRoutesByCapacity(ctx context.Context, limit int) ([]*models.Route, error)
	CountAircraftByStatus(ctx context.Context, status models.AircraftStatus) (int, error)

	CreateAircraft(ctx context.Context, aircraft models.Aircraft) error
	GetAircraft(ctx context.Context, registration string) (*models.Aircraft, error)
	ListAircraft(ctx context.Context) ([]*models.Aircraft, error)
	UpdateAircraft(ctx context.Context, aircraft models.Aircraft) error
	DeleteAircraft(ctx context.Context, registration string) error
}

// Service реализует сценарии управления парком.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateAirport заводит новый аэропорт, код нормализуется к верхнему регистру.
func (s *Service) CreateAirport(ctx context.Context, airport models.Airport) error {
	airport.Code = strings.ToUpper(airport.Code)
	return s.repo.CreateAirport(ctx, airport)
}

// ListAirports возвращает все аэропорты.
func (s *Service) ListAirports(ctx context.Context) ([]*models.Airport, error) {
	return s.repo.ListAirports(ctx)
}

// CreateRoute заводит маршрут. Оба аэропорта должны существовать
// и различаться, пара аэропортов уникальна.
func (s *Service) CreateRoute(ctx context.Context, route models.Route) (int, error) {
	route.SourceAirportCode = strings.ToUpper(route.SourceAirportCode)
	route.DestinationAirportCode = strings.ToUpper(route.DestinationAirportCode)

	if route.SourceAirportCode == route.DestinationAirportCode {
		return 0, ErrSameAirports
	}
	if _, err := s.repo.GetAirport(ctx, route.SourceAirportCode); err != nil {
		return 0, err
	}
	if _, err := s.repo.GetAirport(ctx, route.DestinationAirportCode); err != nil {
		return 0, err
	}
	return s.repo.CreateRoute(ctx, route)
}

// GetRoute возвращает маршрут по ID.
func (s *Service) GetRoute(ctx context.Context, routeID int) (*models.Route, error) {
	return s.repo.GetRoute(ctx, routeID)
}

// ListRoutes возвращает все маршруты.
func (s *Service) ListRoutes(ctx context.Context) ([]*models.Route, error) {
	return s.repo.ListRoutes(ctx)
}

// RouteUpdate перечисляет изменяемые поля маршрута; nil-поле не меняется.
type RouteUpdate struct {
	SourceAirportCode      *string
	DestinationAirportCode *string
	ApprovedCapacity       *int
}

// UpdateRoute применяет частичное обновление к существующему маршруту.
// Новые аэропорты должны существовать, итоговая пара — различаться
// и оставаться уникальной.
func (s *Service) UpdateRoute(ctx context.Context, routeID int, upd RouteUpdate) (*models.Route, error) {
	route, err := s.repo.GetRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if upd.SourceAirportCode != nil {
		code := strings.ToUpper(*upd.SourceAirportCode)
		if _, err := s.repo.GetAirport(ctx, code); err != nil {
			return nil, err
		}
		route.SourceAirportCode = code
	}
	if upd.DestinationAirportCode != nil {
		code := strings.ToUpper(*upd.DestinationAirportCode)
		if _, err := s.repo.GetAirport(ctx, code); err != nil {
			return nil, err
		}
		route.DestinationAirportCode = code
	}
	if route.SourceAirportCode == route.DestinationAirportCode {
		return nil, ErrSameAirports
	}
	if upd.ApprovedCapacity != nil {
		route.ApprovedCapacity = *upd.ApprovedCapacity
	}
	if err := s.repo.UpdateRoute(ctx, *route); err != nil {
		return nil, err
	}
	return route, nil
}

// RemoveRoute удаляет маршрут; занятый рейсами маршрут не удаляется.
func (s *Service) RemoveRoute(ctx context.Context, routeID int) error {
	return s.repo.DeleteRoute(ctx, routeID)
}

// Dashboard — сводка для панели администратора.
type Dashboard struct {
	PopularRoutes         []*models.Route
	ActiveAircraft        int
	AircraftInMaintenance int
}

// Dashboard собирает сводку администратора: самые вместительные маршруты
// и распределение парка по статусам.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	routes, err := s.repo.TopRoutesByCapacity(ctx, 7)
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
	return &Dashboard{
		PopularRoutes:         routes,
		ActiveAircraft:        active,
		AircraftInMaintenance: maintenance,
	}, nil
}

// CreateAircraft заводит новое воздушное судно.
func (s *Service) CreateAircraft(ctx context.Context, aircraft models.Aircraft) error {
	if aircraft.Status == "" {
		aircraft.Status = models.AircraftStatusActive
	}
	return s.repo.CreateAircraft(ctx, aircraft)
}

// GetAircraft возвращает воздушное судно по регистрационному номеру.
func (s *Service) GetAircraft(ctx context.Context, registration string) (*models.Aircraft, error) {
	return s.repo.GetAircraft(ctx, registration)
}

// ListAircraft возвращает весь парк.
func (s *Service) ListAircraft(ctx context.Context) ([]*models.Aircraft, error) {
	return s.repo.ListAircraft(ctx)
}

// AircraftUpdate перечисляет изменяемые поля судна; nil-поле не меняется.
type AircraftUpdate struct {
	Company  *string
	Model    *string
	Capacity *int
	Status   *models.AircraftStatus
}

// UpdateAircraft применяет частичное обновление к существующему судну.
func (s *Service) UpdateAircraft(ctx context.Context, registration string, upd AircraftUpdate) (*models.Aircraft, error) {
	aircraft, err := s.repo.GetAircraft(ctx, registration)
	if err != nil {
		return nil, err
	}
	if upd.Company != nil {
		aircraft.Company = *upd.Company
	}
	if upd.Model != nil {
		aircraft.Model = *upd.Model
	}
	if upd.Capacity != nil {
		aircraft.Capacity = *upd.Capacity
	}
	if upd.Status != nil {
		aircraft.Status = *upd.Status
	}
	if err := s.repo.UpdateAircraft(ctx, *aircraft); err != nil {
		return nil, err
	}
	return aircraft, nil
}

// RemoveAircraft удаляет судно. Хранилище выполняет проверку зависимых
// записей и удаление в одной транзакции; при блокировке возвращается
// *repository.DependencyError.
func (s *Service) RemoveAircraft(ctx context.Context, registration string) error {
	return s.repo.DeleteAircraft(ctx, registration)
}
