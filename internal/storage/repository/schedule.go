package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aerosync-io/aerosync/internal/models"
)

// CreateFlight сохраняет новый рейс.
func (s *Storage) CreateFlight(ctx context.Context, flight models.Flight) error {
	const op = "storage.CreateFlight"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO flights (flight_number, date, route_id,
			      scheduled_departure_time, scheduled_arrival_time, aircraft_registration)
			  VALUES ($1, $2, $3, $4::time, $5::time, $6)`
	if _, err := s.DB.ExecContext(ctx, query,
		flight.FlightNumber, flight.Date, flight.RouteID,
		flight.DepartureTime, flight.ArrivalTime, flight.AircraftRegistration); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetFlight возвращает рейс по номеру и дате.
func (s *Storage) GetFlight(ctx context.Context, flightNumber string, date time.Time) (*models.Flight, error) {
	const op = "storage.GetFlight"

	query := `SELECT flight_number, date, route_id,
			      to_char(scheduled_departure_time, 'HH24:MI'),
			      to_char(scheduled_arrival_time, 'HH24:MI'),
			      aircraft_registration
			  FROM flights
			  WHERE flight_number = $1 AND date = $2`
	f := &models.Flight{}
	if err := s.DB.QueryRowContext(ctx, query, flightNumber, date).Scan(
		&f.FlightNumber, &f.Date, &f.RouteID,
		&f.DepartureTime, &f.ArrivalTime, &f.AircraftRegistration); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrFlightNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

// ListFlights возвращает все рейсы.
func (s *Storage) ListFlights(ctx context.Context) ([]*models.Flight, error) {
	const op = "storage.ListFlights"

	rows, err := s.DB.QueryContext(ctx, `SELECT flight_number, date, route_id,
			      to_char(scheduled_departure_time, 'HH24:MI'),
			      to_char(scheduled_arrival_time, 'HH24:MI'),
			      aircraft_registration
			  FROM flights
			  ORDER BY date, flight_number`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Flight
	for rows.Next() {
		var f models.Flight
		if err = rows.Scan(&f.FlightNumber, &f.Date, &f.RouteID,
			&f.DepartureTime, &f.ArrivalTime, &f.AircraftRegistration); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateFlight перезаписывает изменяемые поля рейса, найденного по номеру
// и исходной дате. Перенос даты каскадно обновляет назначения экипажа.
func (s *Storage) UpdateFlight(ctx context.Context, flightNumber string, date time.Time, updated models.Flight) error {
	const op = "storage.UpdateFlight"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE flights
			  SET date = $1, route_id = $2,
			      scheduled_departure_time = $3::time, scheduled_arrival_time = $4::time,
			      aircraft_registration = $5
			  WHERE flight_number = $6 AND date = $7`
	res, err := s.DB.ExecContext(ctx, query,
		updated.Date, updated.RouteID, updated.DepartureTime, updated.ArrivalTime,
		updated.AircraftRegistration, flightNumber, date)
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
		return fmt.Errorf("%s: %w", op, ErrFlightNotFound)
	}
	return nil
}

// DeleteFlight удаляет рейс вместе с его назначениями экипажа
// в одной транзакции.
func (s *Storage) DeleteFlight(ctx context.Context, flightNumber string, date time.Time) error {
	const op = "storage.DeleteFlight"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM crew_schedules WHERE flight_number = $1 AND date = $2`,
		flightNumber, date); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	res, err := tx.ExecContext(ctx,
		`DELETE FROM flights WHERE flight_number = $1 AND date = $2`, flightNumber, date)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrFlightNotFound)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListCrewForFlight возвращает членов экипажа, назначенных на рейс.
func (s *Storage) ListCrewForFlight(ctx context.Context, flightNumber string, date time.Time) ([]*models.CrewMember, error) {
	const op = "storage.ListCrewForFlight"

	query := `SELECT c.email, c.name, COALESCE(c.phone, ''), c.is_pilot
			  FROM crew_schedules cs
			  JOIN crew c ON c.email = cs.crew_email
			  WHERE cs.flight_number = $1 AND cs.date = $2
			  ORDER BY c.email`
	rows, err := s.DB.QueryContext(ctx, query, flightNumber, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CrewMember
	for rows.Next() {
		var m models.CrewMember
		if err = rows.Scan(&m.Email, &m.Name, &m.Phone, &m.IsPilot); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AssignCrew назначает члена экипажа на рейс.
func (s *Storage) AssignCrew(ctx context.Context, assignment models.CrewAssignment) error {
	const op = "storage.AssignCrew"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO crew_schedules (flight_number, date, scheduled_departure_time, crew_email)
			  VALUES ($1, $2, $3::time, $4)`
	if _, err := s.DB.ExecContext(ctx, query,
		assignment.FlightNumber, assignment.Date,
		assignment.DepartureTime, assignment.CrewEmail); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListFlightsForCrew возвращает рейсы, на которые назначен член экипажа,
// вместе с аэропортами маршрута.
func (s *Storage) ListFlightsForCrew(ctx context.Context, crewEmail string) ([]*models.CrewFlight, error) {
	const op = "storage.ListFlightsForCrew"

	query := `SELECT f.flight_number, f.date, f.route_id,
			      to_char(f.scheduled_departure_time, 'HH24:MI'),
			      to_char(f.scheduled_arrival_time, 'HH24:MI'),
			      f.aircraft_registration,
			      r.source_airport_code, r.destination_airport_code
			  FROM crew_schedules cs
			  JOIN flights f ON f.flight_number = cs.flight_number AND f.date = cs.date
			  JOIN routes r ON r.route_id = f.route_id
			  WHERE cs.crew_email = $1
			  ORDER BY f.date, f.scheduled_departure_time`
	rows, err := s.DB.QueryContext(ctx, query, crewEmail)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CrewFlight
	for rows.Next() {
		var cf models.CrewFlight
		if err = rows.Scan(&cf.FlightNumber, &cf.Date, &cf.RouteID,
			&cf.DepartureTime, &cf.ArrivalTime, &cf.AircraftRegistration,
			&cf.SourceAirportCode, &cf.DestinationAirportCode); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &cf)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
