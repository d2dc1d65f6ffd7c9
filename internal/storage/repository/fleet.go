package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aerosync-io/aerosync/internal/models"
)

// isUniqueViolation распознаёт нарушение уникального ограничения PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// isForeignKeyViolation распознаёт нарушение внешнего ключа PostgreSQL.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// CreateAirport сохраняет новый аэропорт.
func (s *Storage) CreateAirport(ctx context.Context, airport models.Airport) error {
	const op = "storage.CreateAirport"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO airports (airport_code, city, state, country, airport_name)
			  VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.DB.ExecContext(ctx, query,
		airport.Code, airport.City, airport.State, airport.Country, airport.Name); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetAirport возвращает аэропорт по коду.
func (s *Storage) GetAirport(ctx context.Context, code string) (*models.Airport, error) {
	const op = "storage.GetAirport"

	query := `SELECT airport_code, city, COALESCE(state, ''), country, airport_name
			  FROM airports
			  WHERE airport_code = $1`
	a := &models.Airport{}
	if err := s.DB.QueryRowContext(ctx, query, code).Scan(
		&a.Code, &a.City, &a.State, &a.Country, &a.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrAirportNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ListAirports возвращает все аэропорты.
func (s *Storage) ListAirports(ctx context.Context) ([]*models.Airport, error) {
	const op = "storage.ListAirports"

	rows, err := s.DB.QueryContext(ctx, `SELECT airport_code, city, COALESCE(state, ''), country, airport_name
			  FROM airports
			  ORDER BY airport_code`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Airport
	for rows.Next() {
		var a models.Airport
		if err = rows.Scan(&a.Code, &a.City, &a.State, &a.Country, &a.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateRoute сохраняет новый маршрут и возвращает его ID.
func (s *Storage) CreateRoute(ctx context.Context, route models.Route) (int, error) {
	const op = "storage.CreateRoute"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO routes (source_airport_code, destination_airport_code, approved_capacity)
			  VALUES ($1, $2, $3)
			  RETURNING route_id;`
	if err := s.DB.QueryRowContext(ctx, query,
		route.SourceAirportCode, route.DestinationAirportCode, route.ApprovedCapacity).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetRoute возвращает маршрут по ID.
func (s *Storage) GetRoute(ctx context.Context, routeID int) (*models.Route, error) {
	const op = "storage.GetRoute"

	query := `SELECT route_id, source_airport_code, destination_airport_code, approved_capacity
			  FROM routes
			  WHERE route_id = $1`
	r := &models.Route{}
	if err := s.DB.QueryRowContext(ctx, query, routeID).Scan(
		&r.ID, &r.SourceAirportCode, &r.DestinationAirportCode, &r.ApprovedCapacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrRouteNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ListRoutes возвращает все маршруты.
func (s *Storage) ListRoutes(ctx context.Context) ([]*models.Route, error) {
	const op = "storage.ListRoutes"

	rows, err := s.DB.QueryContext(ctx, `SELECT route_id, source_airport_code, destination_airport_code, approved_capacity
			  FROM routes
			  ORDER BY route_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Route
	for rows.Next() {
		var r models.Route
		if err = rows.Scan(&r.ID, &r.SourceAirportCode, &r.DestinationAirportCode, &r.ApprovedCapacity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateRoute перезаписывает изменяемые поля маршрута.
func (s *Storage) UpdateRoute(ctx context.Context, route models.Route) error {
	const op = "storage.UpdateRoute"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE routes
			  SET source_airport_code = $1, destination_airport_code = $2, approved_capacity = $3
			  WHERE route_id = $4`
	res, err := s.DB.ExecContext(ctx, query,
		route.SourceAirportCode, route.DestinationAirportCode, route.ApprovedCapacity, route.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrRouteNotFound)
	}
	return nil
}

// DeleteRoute удаляет маршрут. Маршрут, на который ссылаются рейсы,
// удалить нельзя: нарушение внешнего ключа отображается в ErrRouteInUse.
func (s *Storage) DeleteRoute(ctx context.Context, routeID int) error {
	const op = "storage.DeleteRoute"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM routes WHERE route_id = $1`, routeID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrRouteInUse)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrRouteNotFound)
	}
	return nil
}

// TopRoutesByCapacity возвращает маршруты с наибольшей одобренной
// вместимостью.
func (s *Storage) TopRoutesByCapacity(ctx context.Context, limit int) ([]*models.Route, error) {
	const op = "storage.TopRoutesByCapacity"

	rows, err := s.DB.QueryContext(ctx, `SELECT route_id, source_airport_code, destination_airport_code, approved_capacity
			  FROM routes
			  ORDER BY approved_capacity DESC, route_id
			  LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Route
	for rows.Next() {
		var r models.Route
		if err = rows.Scan(&r.ID, &r.SourceAirportCode, &r.DestinationAirportCode, &r.ApprovedCapacity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountAircraftByStatus возвращает число судов в заданном статусе.
func (s *Storage) CountAircraftByStatus(ctx context.Context, status models.AircraftStatus) (int, error) {
	const op = "storage.CountAircraftByStatus"

	var count int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM aircraft WHERE status = $1`, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CreateAircraft сохраняет новое воздушное судно.
func (s *Storage) CreateAircraft(ctx context.Context, aircraft models.Aircraft) error {
	const op = "storage.CreateAircraft"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO aircraft (registration_number, aircraft_company, model, capacity, status)
			  VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.DB.ExecContext(ctx, query,
		aircraft.RegistrationNumber, aircraft.Company, aircraft.Model,
		aircraft.Capacity, string(aircraft.Status)); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetAircraft возвращает воздушное судно по регистрационному номеру.
func (s *Storage) GetAircraft(ctx context.Context, registration string) (*models.Aircraft, error) {
	const op = "storage.GetAircraft"

	query := `SELECT registration_number, aircraft_company, model, capacity, status
			  FROM aircraft
			  WHERE registration_number = $1`
	a := &models.Aircraft{}
	if err := s.DB.QueryRowContext(ctx, query, registration).Scan(
		&a.RegistrationNumber, &a.Company, &a.Model, &a.Capacity, &a.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrAircraftNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ListAircraft возвращает весь парк воздушных судов.
func (s *Storage) ListAircraft(ctx context.Context) ([]*models.Aircraft, error) {
	const op = "storage.ListAircraft"

	rows, err := s.DB.QueryContext(ctx, `SELECT registration_number, aircraft_company, model, capacity, status
			  FROM aircraft
			  ORDER BY registration_number`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Aircraft
	for rows.Next() {
		var a models.Aircraft
		if err = rows.Scan(&a.RegistrationNumber, &a.Company, &a.Model, &a.Capacity, &a.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateAircraft перезаписывает изменяемые поля воздушного судна.
func (s *Storage) UpdateAircraft(ctx context.Context, aircraft models.Aircraft) error {
	const op = "storage.UpdateAircraft"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE aircraft
			  SET aircraft_company = $1, model = $2, capacity = $3, status = $4
			  WHERE registration_number = $5`
	res, err := s.DB.ExecContext(ctx, query,
		aircraft.Company, aircraft.Model, aircraft.Capacity,
		string(aircraft.Status), aircraft.RegistrationNumber)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrAircraftNotFound)
	}
	return nil
}

// DeleteAircraft удаляет воздушное судно, предварительно убедившись,
// что на него не ссылаются рейсы, назначения экипажа и работы
// обслуживания. Проверка и удаление выполняются в одной serializable
// транзакции, строка судна блокируется на время проверки, поэтому
// конкурентная вставка зависимой записи не может проскочить между
// проверкой и удалением.
func (s *Storage) DeleteAircraft(ctx context.Context, registration string) error {
	const op = "storage.DeleteAircraft"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var reg string
	err = tx.QueryRowContext(ctx,
		`SELECT registration_number FROM aircraft WHERE registration_number = $1 FOR UPDATE`,
		registration).Scan(&reg)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrAircraftNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	dependencies := []struct {
		category string
		query    string
	}{
		{"flights", `SELECT COUNT(*) FROM flights WHERE aircraft_registration = $1`},
		{"crew_schedules", `SELECT COUNT(*) FROM crew_schedules cs
			JOIN flights f ON f.flight_number = cs.flight_number AND f.date = cs.date
			WHERE f.aircraft_registration = $1`},
		{"engineer_schedules", `SELECT COUNT(*) FROM engineer_schedules WHERE registration_number = $1`},
	}
	for _, dep := range dependencies {
		var count int
		if err = tx.QueryRowContext(ctx, dep.query, registration).Scan(&count); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if count > 0 {
			return fmt.Errorf("%s: %w", op, &DependencyError{Category: dep.category, Count: count})
		}
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM aircraft WHERE registration_number = $1`, registration); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
