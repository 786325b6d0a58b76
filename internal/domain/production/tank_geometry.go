package production

import (
	"fmt"
	"math"

	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/shopspring/decimal"
)

// SphericalVolume estima el volumen líquido (m³) de una esfera de capacidad nominal
// capacityVolume (m³) para una altura de líquido heightMM (mm), con la fórmula del casquete
// esférico V = π·h²·(3R − h)/3, donde R = ∛(3·C / 4π). La altura se limita a [0, 2R].
// Es solo una ayuda para pre-llenar liquidVolume; nunca se invoca automáticamente.
func SphericalVolume(capacityVolume, heightMM decimal.Decimal) (decimal.Decimal, error) {
	var errs domain.ValidationErrors
	if !capacityVolume.IsPositive() {
		errs.Add("capacityVolume", "debe ser mayor que cero")
	}
	if heightMM.IsNegative() {
		errs.Add("height", fmt.Sprintf("%s no puede ser negativo", heightMM))
	}
	if len(errs) > 0 {
		return decimal.Zero, errs
	}

	c := capacityVolume.InexactFloat64()
	radius := math.Cbrt(3 * c / (4 * math.Pi))
	h := heightMM.InexactFloat64() / 1000
	// Un casquete de altura 2R es la esfera completa: se devuelve la capacidad exacta.
	if h >= 2*radius {
		return capacityVolume, nil
	}

	v := math.Pi * h * h * (3*radius - h) / 3
	return decimal.NewFromFloat(v).Round(3), nil
}
