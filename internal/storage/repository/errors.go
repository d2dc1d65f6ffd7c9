package repository

import (
	"errors"
	"fmt"
)

// Сигнальные ошибки хранилища. Сервисный слой отображает их
// в коды ответов API.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAirportNotFound  = errors.New("airport not found")
	ErrRouteNotFound    = errors.New("route not found")
	ErrAircraftNotFound = errors.New("aircraft not found")
	ErrFlightNotFound   = errors.New("flight not found")
	ErrJobNotFound      = errors.New("maintenance job not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrRouteInUse       = errors.New("route is referenced by flights")
)

// DependencyError возвращается, когда удаление воздушного судна
// заблокировано зависимыми записями. Category называет непустую
// категорию: flights, crew_schedules или engineer_schedules.
type DependencyError struct {
	Category string
	Count    int
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("aircraft has %d dependent rows in %s", e.Count, e.Category)
}
