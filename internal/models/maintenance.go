package models

import (
	"errors"
	"time"
)

// MaintenanceStatus — статус работы технического обслуживания.
type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
)

// MaintenanceType — тип работы технического обслуживания.
type MaintenanceType string

const (
	MaintenanceTypeRoutine    MaintenanceType = "routine"
	MaintenanceTypeInspection MaintenanceType = "inspection"
	MaintenanceTypeRepair     MaintenanceType = "repair"
	MaintenanceTypeOverhaul   MaintenanceType = "overhaul"
)

// ErrUnknownMaintenanceType возвращается для типа работы вне фиксированного набора.
var ErrUnknownMaintenanceType = errors.New("unknown maintenance type")

// ParseMaintenanceType проверяет строку типа работы и возвращает MaintenanceType.
func ParseMaintenanceType(s string) (MaintenanceType, error) {
	switch MaintenanceType(s) {
	case MaintenanceTypeRoutine, MaintenanceTypeInspection, MaintenanceTypeRepair, MaintenanceTypeOverhaul:
		return MaintenanceType(s), nil
	default:
		return "", ErrUnknownMaintenanceType
	}
}

// EngineerSchedule представляет работу по обслуживанию воздушного судна,
// закреплённую за инженером.
type EngineerSchedule struct {
	JobID              int
	RegistrationNumber string
	EngineerEmail      string
	CheckinDate        time.Time
	CheckoutDate       *time.Time
	Status             MaintenanceStatus
	Type               MaintenanceType
	Remarks            string
}
