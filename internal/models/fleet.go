package models

// AircraftStatus — эксплуатационный статус воздушного судна.
type AircraftStatus string

const (
	AircraftStatusActive      AircraftStatus = "active"
	AircraftStatusMaintenance AircraftStatus = "maintenance"
	AircraftStatusRetired     AircraftStatus = "retired"
)

// Airport представляет аэропорт.
type Airport struct {
	Code    string // Трёхбуквенный код IATA, первичный ключ
	City    string
	State   string
	Country string
	Name    string
}

// Route представляет маршрут между двумя аэропортами.
type Route struct {
	ID                     int
	SourceAirportCode      string
	DestinationAirportCode string
	ApprovedCapacity       int
}

// Aircraft представляет воздушное судно парка.
type Aircraft struct {
	RegistrationNumber string // Регистрационный номер, первичный ключ
	Company            string
	Model              string
	Capacity           int
	Status             AircraftStatus
}
