package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aerosync-io/aerosync/internal/models"
)

// ListRecentFlights возвращает последние поставленные рейсы вместе
// с маршрутом и его вместимостью.
func (s *Storage) ListRecentFlights(ctx context.Context, limit int) ([]*models.DashboardFlight, error) {
	const op = "storage.ListRecentFlights"

	query := `SELECT f.flight_number, f.date, f.route_id,
			      to_char(f.scheduled_departure_time, 'HH24:MI'),
			      to_char(f.scheduled_arrival_time, 'HH24:MI'),
			      f.aircraft_registration,
			      r.source_airport_code, r.destination_airport_code, r.approved_capacity
			  FROM flights f
			  JOIN routes r ON r.route_id = f.route_id
			  ORDER BY f.date DESC, f.scheduled_departure_time DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DashboardFlight
	for rows.Next() {
		var df models.DashboardFlight
		if err = rows.Scan(&df.FlightNumber, &df.Date, &df.RouteID,
			&df.DepartureTime, &df.ArrivalTime, &df.AircraftRegistration,
			&df.SourceAirportCode, &df.DestinationAirportCode, &df.ApprovedCapacity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &df)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FlightStats собирает агрегаты по рейсам на момент now: рейсы и суда
// в воздухе, рейсы и задействованные суда текущей недели (пн-вс).
func (s *Storage) FlightStats(ctx context.Context, now time.Time) (*models.FlightStats, error) {
	const op = "storage.FlightStats"

	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	timeOfDay := now.Format("15:04")

	// Неделя начинается с понедельника
	offset := (int(today.Weekday()) + 6) % 7
	weekStart := today.AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 7)

	stats := &models.FlightStats{}
	queries := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&stats.FlightsInAir, `SELECT COUNT(*) FROM flights
			WHERE date = $1 AND scheduled_departure_time <= $2::time AND scheduled_arrival_time >= $2::time`,
			[]any{today, timeOfDay}},
		{&stats.AircraftInAir, `SELECT COUNT(DISTINCT aircraft_registration) FROM flights
			WHERE date = $1 AND scheduled_departure_time <= $2::time AND scheduled_arrival_time >= $2::time`,
			[]any{today, timeOfDay}},
		{&stats.WeeklyFlights, `SELECT COUNT(*) FROM flights WHERE date >= $1 AND date < $2`,
			[]any{weekStart, weekEnd}},
		{&stats.AircraftUsedWeekly, `SELECT COUNT(DISTINCT aircraft_registration) FROM flights
			WHERE date >= $1 AND date < $2`,
			[]any{weekStart, weekEnd}},
	}
	for _, q := range queries {
		if err := s.DB.QueryRowContext(ctx, q.query, q.args...).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return stats, nil
}

// CountJobsCompletedSince возвращает число работ обслуживания,
// завершённых начиная с since.
func (s *Storage) CountJobsCompletedSince(ctx context.Context, since time.Time) (int, error) {
	const op = "storage.CountJobsCompletedSince"

	var count int
	query := `SELECT COUNT(*) FROM engineer_schedules
			  WHERE status = 'completed' AND checkout_date IS NOT NULL AND checkout_date >= $1`
	if err := s.DB.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
