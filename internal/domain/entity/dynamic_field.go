package entity

import "github.com/shopspring/decimal"

// Tipos de campo dinámico.
const (
	FieldKindAppro  = "APPRO"  // aprovisionamiento (entradas)
	FieldKindSortie = "SORTIE" // salidas a granel
)

// DynamicField campo configurable por centro para aprovisionamientos y salidas.
type DynamicField struct {
	ID       string
	CenterID string
	Kind     string
	Name     string
	Label    string
	Required bool
	Position int
}

// DynamicValue valor de un campo dinámico en una sesión (único por sesión + campo).
type DynamicValue struct {
	SessionID string
	FieldID   string
	FieldName string
	Kind      string
	Value     decimal.Decimal
}
