package production

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// CorrectionRow fila de la tabla: temperatura y sus factores líquido/vapor.
type CorrectionRow struct {
	Temperature decimal.Decimal
	Liquid      decimal.Decimal
	Vapor       decimal.Decimal
}

// Factors resultado de una consulta a la tabla.
type Factors struct {
	Liquid decimal.Decimal
	Vapor  decimal.Decimal
}

// CorrectionTable tabla ordenada temperatura → factores. Inmutable y segura para uso concurrente.
type CorrectionTable struct {
	rows []CorrectionRow
}

var defaultTable = mustDefaultTable()

// DefaultCorrectionTable devuelve la tabla estática 15.0–36.0 °C.
func DefaultCorrectionTable() *CorrectionTable {
	return defaultTable
}

func mustDefaultTable() *CorrectionTable {
	rows := make([]CorrectionRow, 0, len(correctionRows))
	for _, r := range correctionRows {
		rows = append(rows, CorrectionRow{
			Temperature: decimal.NewFromFloat(r.t),
			Liquid:      decimal.NewFromFloat(r.liquid),
			Vapor:       decimal.NewFromFloat(r.vapor),
		})
	}
	t, err := NewCorrectionTable(rows)
	if err != nil {
		panic("tabla de corrección inválida: " + err.Error())
	}
	return t
}

// NewCorrectionTable construye una tabla; exige al menos dos filas en orden estrictamente ascendente.
func NewCorrectionTable(rows []CorrectionRow) (*CorrectionTable, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("se requieren al menos 2 filas, hay %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if !rows[i].Temperature.GreaterThan(rows[i-1].Temperature) {
			return nil, fmt.Errorf("fila %d: temperatura %s no es mayor que %s",
				i, rows[i].Temperature, rows[i-1].Temperature)
		}
	}
	cp := make([]CorrectionRow, len(rows))
	copy(cp, rows)
	return &CorrectionTable{rows: cp}, nil
}

// Min temperatura mínima soportada.
func (c *CorrectionTable) Min() decimal.Decimal { return c.rows[0].Temperature }

// Max temperatura máxima soportada.
func (c *CorrectionTable) Max() decimal.Decimal { return c.rows[len(c.rows)-1].Temperature }

// InRange indica si t está dentro del intervalo cerrado [Min, Max].
func (c *CorrectionTable) InRange(t decimal.Decimal) bool {
	return !t.LessThan(c.Min()) && !t.GreaterThan(c.Max())
}

// Lookup devuelve los factores para la temperatura t.
//   - coincidencia exacta con una fila: factores de la fila.
//   - fuera de rango: fila límite más cercana, sin extrapolar; clamped = true.
//   - en rango: interpolación lineal entre las filas que encierran t.
func (c *CorrectionTable) Lookup(t decimal.Decimal) (f Factors, clamped bool) {
	if t.LessThan(c.Min()) {
		r := c.rows[0]
		return Factors{Liquid: r.Liquid, Vapor: r.Vapor}, true
	}
	if t.GreaterThan(c.Max()) {
		r := c.rows[len(c.rows)-1]
		return Factors{Liquid: r.Liquid, Vapor: r.Vapor}, true
	}

	// Primera fila con temperatura >= t.
	i := sort.Search(len(c.rows), func(i int) bool {
		return !c.rows[i].Temperature.LessThan(t)
	})
	upper := c.rows[i]
	if upper.Temperature.Equal(t) {
		return Factors{Liquid: upper.Liquid, Vapor: upper.Vapor}, false
	}
	lower := c.rows[i-1]

	ratio := t.Sub(lower.Temperature).Div(upper.Temperature.Sub(lower.Temperature))
	return Factors{
		Liquid: interpolate(lower.Liquid, upper.Liquid, ratio),
		Vapor:  interpolate(lower.Vapor, upper.Vapor, ratio),
	}, false
}

func interpolate(lo, hi, ratio decimal.Decimal) decimal.Decimal {
	return lo.Add(ratio.Mul(hi.Sub(lo)))
}
