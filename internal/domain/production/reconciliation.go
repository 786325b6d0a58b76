package production

import (
	"fmt"
	"time"

	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultLunchBreakMinutes descuento fijo de almuerzo aplicado al tiempo total.
const DefaultLunchBreakMinutes = 60

const minutesPerDay = 24 * 60

// WorkTime tiempos de la jornada y rendimiento.
type WorkTime struct {
	TotalMinutes    int
	DowntimeMinutes int
	UsefulMinutes   int
	YieldPercent    decimal.Decimal
}

// ParseClock convierte "HH:MM" en minutos desde medianoche.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("hora %q inválida, formato HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ComputeWorkTime calcula el tiempo total a partir de las horas explícitas o, si no viene
// ninguna, del tiempo transcurrido desde startedAt; una sola hora informada es un error.
// Descuenta lunchBreak (mínimo 0) y deriva minutos útiles y rendimiento. Con total 0 el rendimiento es 0.
// Si la hora de fin es anterior a la de inicio se asume que la jornada cruzó la medianoche.
func ComputeWorkTime(startTime, endTime *string, startedAt, now time.Time, lunchBreak, downtime int) (WorkTime, error) {
	var errs domain.ValidationErrors
	if downtime < 0 {
		errs.Add("arrets", "no puede ser negativo")
	}

	hasStart := startTime != nil && *startTime != ""
	hasEnd := endTime != nil && *endTime != ""
	switch {
	case hasStart && !hasEnd:
		errs.Add("heureFin", "requerida cuando se informa heureDebut")
	case hasEnd && !hasStart:
		errs.Add("heureDebut", "requerida cuando se informa heureFin")
	}

	var elapsed int
	if hasStart && hasEnd {
		start, err := ParseClock(*startTime)
		if err != nil {
			errs.Add("heureDebut", err.Error())
		}
		end, err := ParseClock(*endTime)
		if err != nil {
			errs.Add("heureFin", err.Error())
		}
		elapsed = end - start
		if elapsed < 0 {
			elapsed += minutesPerDay
		}
	} else {
		elapsed = int(now.Sub(startedAt) / time.Minute)
	}
	if len(errs) > 0 {
		return WorkTime{}, errs
	}

	total := max(elapsed-lunchBreak, 0)
	useful := max(total-downtime, 0)
	wt := WorkTime{
		TotalMinutes:    total,
		DowntimeMinutes: downtime,
		UsefulMinutes:   useful,
		YieldPercent:    decimal.Zero,
	}
	if total > 0 {
		wt.YieldPercent = decimal.NewFromInt(int64(useful)).
			Div(decimal.NewFromInt(int64(total))).
			Mul(hundred).
			Round(2)
	}
	return wt, nil
}

// ReconciliationInput entradas del balance de cierre.
type ReconciliationInput struct {
	InitialPhysicalStock decimal.Decimal
	Appros               []entity.DynamicValue
	Sorties              []entity.DynamicValue
	LegacyAppro          decimal.Decimal // usado si no hay valores dinámicos de aprovisionamiento
	LegacySortie         decimal.Decimal // usado si no hay valores dinámicos de salida
	BottleTonnage        decimal.Decimal
	Tanks                []entity.TankReading
}

// ReconciliationResult stock teórico vs físico.
type ReconciliationResult struct {
	TotalAppro            decimal.Decimal
	TotalBulkSorties      decimal.Decimal
	CumulSortie           decimal.Decimal
	TheoreticalFinalStock decimal.Decimal
	PhysicalFinalStock    decimal.Decimal
	Variance              decimal.Decimal
	VariancePercent       decimal.Decimal
}

// Reconcile calcula:
//
//	teórico = stock inicial + aprovisionamientos − (salidas a granel + tonelaje en botellas)
//	físico  = Σ peso total de los reservorios
//	écart   = físico − teórico; % = écart / teórico × 100 (0 si teórico = 0)
func Reconcile(in ReconciliationInput) ReconciliationResult {
	appro := in.LegacyAppro
	if len(in.Appros) > 0 {
		appro = sumValues(in.Appros)
	}
	bulk := in.LegacySortie
	if len(in.Sorties) > 0 {
		bulk = sumValues(in.Sorties)
	}
	cumul := bulk.Add(in.BottleTonnage)
	theoretical := in.InitialPhysicalStock.Add(appro).Sub(cumul)

	physical := decimal.Zero
	for i := range in.Tanks {
		physical = physical.Add(in.Tanks[i].WeightOrZero())
	}
	variance := physical.Sub(theoretical)
	pct := decimal.Zero
	if !theoretical.IsZero() {
		pct = variance.Div(theoretical).Mul(hundred).Round(4)
	}

	return ReconciliationResult{
		TotalAppro:            appro,
		TotalBulkSorties:      bulk,
		CumulSortie:           cumul,
		TheoreticalFinalStock: theoretical,
		PhysicalFinalStock:    physical,
		Variance:              variance,
		VariancePercent:       pct,
	}
}

func sumValues(values []entity.DynamicValue) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.Value)
	}
	return total
}
