package models

import "time"

// Flight представляет рейс. Первичный ключ составной: номер рейса и дата.
type Flight struct {
	FlightNumber         string
	Date                 time.Time // Только дата, время обнулено
	RouteID              int
	DepartureTime        string // Время вылета в формате HH:MM
	ArrivalTime          string // Время прилёта в формате HH:MM
	AircraftRegistration string
}

// CrewAssignment представляет назначение члена экипажа на рейс.
type CrewAssignment struct {
	FlightNumber  string
	Date          time.Time
	DepartureTime string
	CrewEmail     string
}

// CrewFlight — рейс в расписании члена экипажа вместе с маршрутом.
type CrewFlight struct {
	Flight
	SourceAirportCode      string
	DestinationAirportCode string
}

// CrewMember — сводка члена экипажа без хэша пароля.
type CrewMember struct {
	Email   string
	Name    string
	Phone   string
	IsPilot bool
}

// DashboardFlight — рейс вместе с маршрутом и его вместимостью
// для сводных панелей.
type DashboardFlight struct {
	CrewFlight
	ApprovedCapacity int
}

// FlightStats — агрегаты по рейсам и парку на момент запроса.
type FlightStats struct {
	FlightsInAir       int // Рейсы, находящиеся в воздухе прямо сейчас
	AircraftInAir      int // Разные суда в воздухе прямо сейчас
	WeeklyFlights      int // Рейсы текущей недели (пн-вс)
	AircraftUsedWeekly int // Разные суда, задействованные на этой неделе
}
