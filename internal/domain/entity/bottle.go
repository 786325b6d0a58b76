package entity

import "github.com/shopspring/decimal"

// Tipos de botella (peso unitario en kg en production.BottleUnitWeights).
const (
	BottleB2_7 = "B2_7"
	BottleB6   = "B6"
	BottleB9   = "B9"
	BottleB12  = "B12"
	BottleB38  = "B38"
)

// BottleEntry cantidad de botellas llenadas de un tipo durante la sesión.
type BottleEntry struct {
	ID        string
	SessionID string
	Type      string
	Quantity  int
	Tonnage   decimal.Decimal // quantity × peso unitario / 1000
}
