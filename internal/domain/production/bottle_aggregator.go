package production

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BottleUnitWeights peso unitario de GLP por tipo de botella (kg).
var BottleUnitWeights = map[string]decimal.Decimal{
	entity.BottleB2_7: decimal.NewFromFloat(2.7),
	entity.BottleB6:   decimal.NewFromInt(6),
	entity.BottleB9:   decimal.NewFromInt(9),
	entity.BottleB12:  decimal.NewFromFloat(12.5),
	entity.BottleB38:  decimal.NewFromInt(38),
}

var thousand = decimal.NewFromInt(1000)

// BottleTypes tipos conocidos, ordenados.
func BottleTypes() []string {
	out := make([]string, 0, len(BottleUnitWeights))
	for t := range BottleUnitWeights {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// BottleTonnage toneladas = cantidad × peso unitario / 1000.
func BottleTonnage(bottleType string, quantity int) (decimal.Decimal, error) {
	w, ok := BottleUnitWeights[bottleType]
	if !ok {
		return decimal.Zero, domain.ValidationErrors{{Field: "type", Message: fmt.Sprintf("tipo de botella desconocido %q", bottleType)}}
	}
	if quantity < 0 {
		return decimal.Zero, domain.ValidationErrors{{Field: "quantity", Message: fmt.Sprintf("%d no puede ser negativo", quantity)}}
	}
	return decimal.NewFromInt(int64(quantity)).Mul(w).Div(thousand), nil
}

// BottleSummary totales de producción en botellas.
type BottleSummary struct {
	Entries       []entity.BottleEntry
	PerType       map[string]decimal.Decimal
	TotalQuantity int
	TotalTonnage  decimal.Decimal
}

// AggregateBottles calcula el tonelaje de cada entrada y los totales. Un tipo desconocido
// se rechaza: omitirlo subestimaría la producción.
func AggregateBottles(entries []entity.BottleEntry) (BottleSummary, error) {
	sum := BottleSummary{
		Entries:      make([]entity.BottleEntry, 0, len(entries)),
		PerType:      make(map[string]decimal.Decimal),
		TotalTonnage: decimal.Zero,
	}
	var errs domain.ValidationErrors
	for i, e := range entries {
		t, err := BottleTonnage(e.Type, e.Quantity)
		if err != nil {
			var ve domain.ValidationErrors
			if errors.As(err, &ve) {
				errs = append(errs, ve.Prefixed(fmt.Sprintf("bouteilles[%d].", i))...)
			}
			continue
		}
		e.Tonnage = t
		sum.Entries = append(sum.Entries, e)
		sum.PerType[e.Type] = sum.PerType[e.Type].Add(t)
		sum.TotalQuantity += e.Quantity
		sum.TotalTonnage = sum.TotalTonnage.Add(t)
	}
	if len(errs) > 0 {
		return BottleSummary{}, errs
	}
	return sum, nil
}
