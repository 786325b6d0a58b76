package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de cálculo de un reservorio (mutuamente excluyentes).
const (
	TankModeAutomatic  = "AUTOMATIC"        // lecturas de jauge + tabla de corrección
	TankModeManual     = "MANUAL"           // peso líquido ingresado directamente
	TankModePercentage = "PERCENTAGE_BASED" // % de llenado × capacidad × densidad ambiente de la sesión
)

// Formas de reservorio.
const (
	TankShapeSphere = "SPHERE"
	TankShapeCigar  = "CIGAR"
	TankShapeOther  = "OTHER"
)

// TankConfig configuración fija de un reservorio (administrada fuera de este servicio).
type TankConfig struct {
	ID             string
	CenterID       string
	Name           string
	Shape          string
	CapacityVolume decimal.Decimal  // m³
	CapacityWeight *decimal.Decimal // T, opcional
	Mode           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TankReading lectura de un reservorio dentro de una sesión.
// Las entradas son punteros para distinguir "no informado" de cero; las salidas quedan
// en nil cuando un borrador AUTOMATIC no pudo calcularse.
type TankReading struct {
	ID           string
	SessionID    string
	Name         string
	TankConfigID string
	Mode         string // copia del modo vigente al momento de la lectura

	// Entradas crudas
	Height           *decimal.Decimal // mm
	Temperature      *decimal.Decimal // °C
	VaporTemperature *decimal.Decimal // °C
	LiquidVolume     *decimal.Decimal // m³
	InternalPressure *decimal.Decimal // bar
	DensityAt15C     *decimal.Decimal
	FillPercentage   *decimal.Decimal

	// Salidas calculadas (LiquidWeight es entrada en modo MANUAL)
	LiquidCorrectionFactor *decimal.Decimal
	VaporCorrectionFactor  *decimal.Decimal
	AmbientDensity         *decimal.Decimal
	LiquidWeight           *decimal.Decimal // T
	VaporWeight            *decimal.Decimal // T
	TotalWeight            *decimal.Decimal // T
}

// Computed indica si la lectura tiene salidas calculadas.
func (r *TankReading) Computed() bool {
	return r.TotalWeight != nil
}

// WeightOrZero devuelve el peso total o cero si la lectura es un borrador sin calcular.
func (r *TankReading) WeightOrZero() decimal.Decimal {
	if r.TotalWeight == nil {
		return decimal.Zero
	}
	return *r.TotalWeight
}

// ClearOutputs borra las salidas calculadas.
func (r *TankReading) ClearOutputs() {
	r.LiquidCorrectionFactor = nil
	r.VaporCorrectionFactor = nil
	r.AmbientDensity = nil
	r.VaporWeight = nil
	r.TotalWeight = nil
	if r.Mode != TankModeManual {
		r.LiquidWeight = nil
	}
}
