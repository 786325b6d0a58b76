package production

import (
	"fmt"

	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CalcPolicy define cómo se tratan las lecturas AUTOMATIC inválidas o incompletas.
type CalcPolicy int

const (
	// PolicyStrict (cierre): cualquier lectura inválida o incompleta es un error de validación.
	PolicyStrict CalcPolicy = iota
	// PolicyDraft (autosave): una lectura AUTOMATIC inválida o incompleta se conserva cruda,
	// sin salidas calculadas y sin error. Los valores negativos en MANUAL/PERCENTAGE siguen siendo error.
	PolicyDraft
)

func (p CalcPolicy) String() string {
	if p == PolicyDraft {
		return "draft"
	}
	return "strict"
}

// Límites físicos de las lecturas AUTOMATIC.
var (
	maxHeightMM         = decimal.NewFromInt(30000)
	maxInternalPressure = decimal.NewFromInt(20)
	minDensityAt15C     = decimal.NewFromFloat(0.4)
	maxDensityAt15C     = decimal.NewFromFloat(0.6)
	hundred             = decimal.NewFromInt(100)
	one                 = decimal.NewFromInt(1)
)

// TankResult lectura con salidas recalculadas.
type TankResult struct {
	Reading  entity.TankReading
	Draft    bool     // true si la lectura quedó sin calcular (solo PolicyDraft)
	Warnings []string // avisos no fatales (temperatura fuera de tabla, borrador descartado)
}

// TankCalculator convierte lecturas de jauge en pesos según el modo del reservorio.
type TankCalculator struct {
	table *CorrectionTable
}

// NewTankCalculator construye el calculador; si table es nil usa la tabla por defecto.
func NewTankCalculator(table *CorrectionTable) *TankCalculator {
	if table == nil {
		table = DefaultCorrectionTable()
	}
	return &TankCalculator{table: table}
}

// Table devuelve la tabla de corrección usada.
func (c *TankCalculator) Table() *CorrectionTable { return c.table }

// Compute recalcula todas las salidas de la lectura a partir de sus entradas y del modo de cfg.
// sharedDensity es la densidad ambiente de la sesión (solo PERCENTAGE_BASED).
// El error, si existe, es siempre domain.ValidationErrors.
func (c *TankCalculator) Compute(
	reading entity.TankReading,
	cfg *entity.TankConfig,
	sharedDensity *decimal.Decimal,
	policy CalcPolicy,
) (TankResult, error) {
	reading.Mode = cfg.Mode
	reading.TankConfigID = cfg.ID
	reading.ClearOutputs()

	switch cfg.Mode {
	case entity.TankModeAutomatic:
		return c.computeAutomatic(reading, cfg, policy)
	case entity.TankModePercentage:
		return computePercentage(reading, cfg, sharedDensity, policy)
	case entity.TankModeManual:
		return computeManual(reading, policy)
	}
	var errs domain.ValidationErrors
	errs.Add("mode", fmt.Sprintf("modo de cálculo desconocido %q", cfg.Mode))
	return TankResult{Reading: reading}, errs
}

// ValidateAutomatic valida rangos físicos de una lectura AUTOMATIC.
func (c *TankCalculator) ValidateAutomatic(r entity.TankReading, capacityVolume decimal.Decimal) domain.ValidationErrors {
	var errs domain.ValidationErrors
	checkRange(&errs, "height", r.Height, decimal.Zero, maxHeightMM, "mm")
	checkRange(&errs, "temperature", r.Temperature, c.table.Min(), c.table.Max(), "°C")
	checkRange(&errs, "vaporTemperature", r.VaporTemperature, c.table.Min(), c.table.Max(), "°C")
	checkRange(&errs, "liquidVolume", r.LiquidVolume, decimal.Zero, capacityVolume, "m³")
	checkRange(&errs, "internalPressure", r.InternalPressure, decimal.Zero, maxInternalPressure, "bar")
	checkRange(&errs, "densityAt15C", r.DensityAt15C, minDensityAt15C, maxDensityAt15C, "")
	return errs
}

func (c *TankCalculator) computeAutomatic(r entity.TankReading, cfg *entity.TankConfig, policy CalcPolicy) (TankResult, error) {
	if errs := c.ValidateAutomatic(r, cfg.CapacityVolume); len(errs) > 0 {
		if policy == PolicyDraft {
			return TankResult{
				Reading:  r,
				Draft:    true,
				Warnings: []string{"lectura guardada sin calcular: " + errs.Error()},
			}, nil
		}
		return TankResult{Reading: r}, errs
	}

	var warnings []string
	liq, clampedL := c.table.Lookup(*r.Temperature)
	vap, clampedV := c.table.Lookup(*r.VaporTemperature)
	if clampedL {
		warnings = append(warnings, fmt.Sprintf("temperatura %s fuera de tabla, se usa el límite", r.Temperature))
	}
	if clampedV {
		warnings = append(warnings, fmt.Sprintf("temperatura de vapor %s fuera de tabla, se usa el límite", r.VaporTemperature))
	}

	ambient := r.DensityAt15C.Sub(liq.Liquid)
	liquidWeight := ambient.Mul(*r.LiquidVolume)
	vaporWeight := cfg.CapacityVolume.Sub(*r.LiquidVolume).Mul(vap.Vapor).Mul(r.InternalPressure.Add(one))
	total := liquidWeight.Add(vaporWeight)

	r.LiquidCorrectionFactor = &liq.Liquid
	r.VaporCorrectionFactor = &vap.Vapor
	r.AmbientDensity = &ambient
	r.LiquidWeight = &liquidWeight
	r.VaporWeight = &vaporWeight
	r.TotalWeight = &total
	return TankResult{Reading: r, Warnings: warnings}, nil
}

func computePercentage(r entity.TankReading, cfg *entity.TankConfig, shared *decimal.Decimal, policy CalcPolicy) (TankResult, error) {
	var errs domain.ValidationErrors
	checkNonNegative(&errs, "fillPercentage", r.FillPercentage)
	checkNonNegative(&errs, "densiteAmbiante", shared)
	if len(errs) > 0 {
		if policy == PolicyDraft && onlyMissing(errs) {
			return TankResult{Reading: r, Draft: true}, nil
		}
		return TankResult{Reading: r}, errs
	}

	liquidWeight := r.FillPercentage.Div(hundred).Mul(cfg.CapacityVolume).Mul(*shared)
	zero := decimal.Zero
	total := liquidWeight
	density := *shared
	r.AmbientDensity = &density
	r.LiquidWeight = &liquidWeight
	r.VaporWeight = &zero
	r.TotalWeight = &total
	return TankResult{Reading: r}, nil
}

func computeManual(r entity.TankReading, policy CalcPolicy) (TankResult, error) {
	var errs domain.ValidationErrors
	checkNonNegative(&errs, "liquidWeight", r.LiquidWeight)
	if len(errs) > 0 {
		if policy == PolicyDraft && onlyMissing(errs) {
			return TankResult{Reading: r, Draft: true}, nil
		}
		return TankResult{Reading: r}, errs
	}
	liquidWeight := *r.LiquidWeight
	zero := decimal.Zero
	total := liquidWeight
	r.LiquidWeight = &liquidWeight
	r.VaporWeight = &zero
	r.TotalWeight = &total
	return TankResult{Reading: r}, nil
}

const msgRequired = "requerido"

func checkRange(errs *domain.ValidationErrors, field string, v *decimal.Decimal, min, max decimal.Decimal, unit string) {
	if v == nil {
		errs.Add(field, msgRequired)
		return
	}
	if v.LessThan(min) || v.GreaterThan(max) {
		suffix := ""
		if unit != "" {
			suffix = " " + unit
		}
		errs.Add(field, fmt.Sprintf("%s fuera de rango [%s, %s]%s", v, min, max, suffix))
	}
}

func checkNonNegative(errs *domain.ValidationErrors, field string, v *decimal.Decimal) {
	if v == nil {
		errs.Add(field, msgRequired)
		return
	}
	if v.IsNegative() {
		errs.Add(field, fmt.Sprintf("%s no puede ser negativo", v))
	}
}

func onlyMissing(errs domain.ValidationErrors) bool {
	for _, e := range errs {
		if e.Message != msgRequired {
			return false
		}
	}
	return true
}
