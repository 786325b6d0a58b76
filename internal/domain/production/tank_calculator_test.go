package production_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/production"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func p(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func autoConfig() *entity.TankConfig {
	return &entity.TankConfig{ID: "tank-1", Name: "Sphère 1", CapacityVolume: d("1000"), Mode: entity.TankModeAutomatic}
}

func autoReading() entity.TankReading {
	return entity.TankReading{
		Name:             "Sphère 1",
		Height:           p("1000"),
		Temperature:      p("20"),
		VaporTemperature: p("20"),
		LiquidVolume:     p("500"),
		InternalPressure: p("1"),
		DensityAt15C:     p("0.508"),
	}
}

func TestCompute_Automatic(t *testing.T) {
	calc := production.NewTankCalculator(nil)

	res, err := calc.Compute(autoReading(), autoConfig(), nil, production.PolicyStrict)
	require.NoError(t, err)
	r := res.Reading

	require.True(t, r.Computed())
	assert.False(t, res.Draft)
	assert.Equal(t, entity.TankModeAutomatic, r.Mode)
	// factor líquido a 20 °C = 0.00505 → densidad ambiente 0.50295
	assert.True(t, r.AmbientDensity.Equal(d("0.50295")), "ambient = %s", r.AmbientDensity)
	assert.True(t, r.LiquidWeight.Equal(d("251.475")), "liquid = %s", r.LiquidWeight)
	expectedVapor := d("500").Mul(*r.VaporCorrectionFactor).Mul(d("2"))
	assert.True(t, r.VaporWeight.Equal(expectedVapor))
	assert.True(t, r.TotalWeight.Equal(r.LiquidWeight.Add(*r.VaporWeight)), "total = liquid + vapor exacto")
}

func TestCompute_Automatic_PresionSoloAfectaVapor(t *testing.T) {
	calc := production.NewTankCalculator(nil)
	base, err := calc.Compute(autoReading(), autoConfig(), nil, production.PolicyStrict)
	require.NoError(t, err)

	changed := autoReading()
	changed.InternalPressure = p("3.5")
	res, err := calc.Compute(changed, autoConfig(), nil, production.PolicyStrict)
	require.NoError(t, err)

	assert.True(t, res.Reading.LiquidWeight.Equal(*base.Reading.LiquidWeight))
	assert.True(t, res.Reading.AmbientDensity.Equal(*base.Reading.AmbientDensity))
	assert.False(t, res.Reading.VaporWeight.Equal(*base.Reading.VaporWeight))
	assert.True(t, res.Reading.TotalWeight.Equal(res.Reading.LiquidWeight.Add(*res.Reading.VaporWeight)))
}

func TestCompute_Automatic_Validacion(t *testing.T) {
	calc := production.NewTankCalculator(nil)
	tests := []struct {
		name   string
		mutate func(r *entity.TankReading)
		field  string
	}{
		{"altura negativa", func(r *entity.TankReading) { r.Height = p("-1") }, "height"},
		{"altura excesiva", func(r *entity.TankReading) { r.Height = p("30001") }, "height"},
		{"temperatura baja", func(r *entity.TankReading) { r.Temperature = p("14.9") }, "temperature"},
		{"temperatura vapor alta", func(r *entity.TankReading) { r.VaporTemperature = p("36.1") }, "vaporTemperature"},
		{"volumen sobre capacidad", func(r *entity.TankReading) { r.LiquidVolume = p("1000.01") }, "liquidVolume"},
		{"presión", func(r *entity.TankReading) { r.InternalPressure = p("21") }, "internalPressure"},
		{"densidad", func(r *entity.TankReading) { r.DensityAt15C = p("0.61") }, "densityAt15C"},
		{"densidad faltante", func(r *entity.TankReading) { r.DensityAt15C = nil }, "densityAt15C"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := autoReading()
			tc.mutate(&r)

			res, err := calc.Compute(r, autoConfig(), nil, production.PolicyStrict)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			var ve domain.ValidationErrors
			require.True(t, errors.As(err, &ve))
			require.Len(t, ve, 1)
			assert.Equal(t, tc.field, ve[0].Field)
			assert.False(t, res.Reading.Computed(), "sin salidas si la validación falla")
		})
	}
}

func TestCompute_Automatic_BorradorConservaEntradas(t *testing.T) {
	calc := production.NewTankCalculator(nil)
	r := autoReading()
	r.Temperature = p("40")
	r.InternalPressure = nil

	res, err := calc.Compute(r, autoConfig(), nil, production.PolicyDraft)

	require.NoError(t, err)
	assert.True(t, res.Draft)
	assert.NotEmpty(t, res.Warnings)
	assert.False(t, res.Reading.Computed())
	assert.Nil(t, res.Reading.LiquidWeight)
	assert.True(t, res.Reading.Temperature.Equal(d("40")), "la entrada cruda se conserva")
}

func TestCompute_Automatic_RecalculaSiempre(t *testing.T) {
	calc := production.NewTankCalculator(nil)
	r := autoReading()
	stale := d("999999")
	r.TotalWeight = &stale
	r.LiquidWeight = &stale

	res, err := calc.Compute(r, autoConfig(), nil, production.PolicyStrict)

	require.NoError(t, err)
	assert.False(t, res.Reading.TotalWeight.Equal(stale))
}

func TestCompute_Percentage(t *testing.T) {
	calc := production.NewTankCalculator(nil)
	cfg := &entity.TankConfig{ID: "tank-p", CapacityVolume: d("100"), Mode: entity.TankModePercentage}
	r := entity.TankReading{Name: "Cigare", FillPercentage: p("50")}

	res, err := calc.Compute(r, cfg, p("0.5"), production.PolicyStrict)

	require.NoError(t, err)
	assert.True(t, res.Reading.LiquidWeight.Equal(d("25")))
	assert.True(t, res.Reading.VaporWeight.IsZero())
	assert.True(t, res.Reading.TotalWeight.Equal(d("25")))
}

func TestCompute_Percentage_SinDensidad(t *testing.T) {
	calc := production.NewTankCalculator(nil)
	cfg := &entity.TankConfig{ID: "tank-p", CapacityVolume: d("100"), Mode: entity.TankModePercentage}
	r := entity.TankReading{FillPercentage: p("50")}

	_, err := calc.Compute(r, cfg, nil, production.PolicyStrict)
	assert.ErrorIs(t, err, domain.ErrValidation)

	res, err := calc.Compute(r, cfg, nil, production.PolicyDraft)
	require.NoError(t, err)
	assert.True(t, res.Draft)

	r.FillPercentage = p("-5")
	_, err = calc.Compute(r, cfg, p("0.5"), production.PolicyDraft)
	assert.ErrorIs(t, err, domain.ErrValidation, "negativo no es un borrador")
}

func TestCompute_Manual(t *testing.T) {
	calc := production.NewTankCalculator(nil)
	cfg := &entity.TankConfig{ID: "tank-m", CapacityVolume: d("100"), Mode: entity.TankModeManual}
	r := autoReading()
	r.LiquidWeight = p("42")
	r.FillPercentage = p("80")

	res, err := calc.Compute(r, cfg, p("0.5"), production.PolicyStrict)

	require.NoError(t, err)
	assert.True(t, res.Reading.TotalWeight.Equal(d("42")))
	assert.True(t, res.Reading.LiquidWeight.Equal(d("42")))
	assert.True(t, res.Reading.VaporWeight.IsZero())
	assert.Nil(t, res.Reading.AmbientDensity)
}

func TestCompute_ModoDesconocido(t *testing.T) {
	calc := production.NewTankCalculator(nil)
	cfg := &entity.TankConfig{ID: "x", CapacityVolume: d("1"), Mode: "LASER"}
	_, err := calc.Compute(entity.TankReading{}, cfg, nil, production.PolicyDraft)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
