package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión diaria de inventario.
const (
	SessionStatusInProgress = "IN_PROGRESS"
	SessionStatusClosed     = "CLOSED"
	SessionStatusArchived   = "ARCHIVED" // transición administrativa externa
)

// DailySession jornada de producción de un centro (raíz del agregado).
// Es dueña de sus lecturas de reservorios, botellas y valores dinámicos.
type DailySession struct {
	ID       string
	CenterID string
	Date     time.Time // solo fecha (00:00 en la zona del centro)
	Status   string

	InitialPhysicalStock decimal.Decimal // T

	// Campos escalares heredados (aprovisionamiento / salidas fijas)
	Butanier     decimal.Decimal
	Recuperation decimal.Decimal
	ApproSAR     decimal.Decimal
	Ngabou       decimal.Decimal
	Exports      decimal.Decimal
	Divers       decimal.Decimal
	Observations string

	// Tiempos
	StartTime       *string // "HH:MM"
	EndTime         *string // "HH:MM"
	TotalMinutes    int
	DowntimeMinutes int
	UsefulMinutes   int
	YieldPercent    decimal.Decimal

	// Solo para reservorios PERCENTAGE_BASED
	SharedAmbientDensity *decimal.Decimal

	// Conciliación
	TotalAppro            decimal.Decimal
	TotalBulkSorties      decimal.Decimal
	TotalBottleTonnage    decimal.Decimal
	CumulSortie           decimal.Decimal
	TheoreticalFinalStock decimal.Decimal
	PhysicalFinalStock    decimal.Decimal
	Variance              decimal.Decimal
	VariancePercent       decimal.Decimal
	TotalBottlesProduced  int

	Tanks   []TankReading
	Bottles []BottleEntry
	Appros  []DynamicValue
	Sorties []DynamicValue

	StartedBy string
	StartedAt time.Time
	ClosedBy  string
	ClosedAt  *time.Time
	UpdatedAt time.Time
}

// InProgress indica si la sesión acepta autosave y cierre.
func (s *DailySession) InProgress() bool {
	return s.Status == SessionStatusInProgress
}

// LegacyApproTotal suma de los campos fijos de aprovisionamiento.
func (s *DailySession) LegacyApproTotal() decimal.Decimal {
	return s.Butanier.Add(s.Recuperation).Add(s.ApproSAR)
}

// LegacySortieTotal suma de los campos fijos de salida a granel.
func (s *DailySession) LegacySortieTotal() decimal.Decimal {
	return s.Ngabou.Add(s.Exports).Add(s.Divers)
}
