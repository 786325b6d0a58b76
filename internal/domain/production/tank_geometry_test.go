package production_test

import (
	"math"
	"testing"

	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/production"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphericalVolume(t *testing.T) {
	capacity := d("1000")
	radiusMM := math.Cbrt(3*1000/(4*math.Pi)) * 1000

	half, err := production.SphericalVolume(capacity, decimal.NewFromFloat(radiusMM))
	require.NoError(t, err)
	assert.InDelta(t, 500, half.InexactFloat64(), 0.01, "a media altura la esfera está a la mitad")

	empty, err := production.SphericalVolume(capacity, d("0"))
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	full, err := production.SphericalVolume(capacity, d("30000"))
	require.NoError(t, err)
	assert.True(t, full.Equal(capacity), "altura mayor al diámetro se limita a la capacidad")
}

func TestSphericalVolume_Monotono(t *testing.T) {
	prev := decimal.Zero
	for h := 500; h <= 12000; h += 500 {
		v, err := production.SphericalVolume(d("1000"), decimal.NewFromInt(int64(h)))
		require.NoError(t, err)
		assert.True(t, v.GreaterThanOrEqual(prev), "h=%d", h)
		prev = v
	}
}

func TestSphericalVolume_Invalido(t *testing.T) {
	_, err := production.SphericalVolume(d("0"), d("100"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = production.SphericalVolume(d("100"), d("-1"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
