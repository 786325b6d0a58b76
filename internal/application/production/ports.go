package production

import (
	"context"
	"time"

	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/production"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cada autosave, cierre o apertura es una única unidad atómica: si fn devuelve error nada persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sessionRepo repository.SessionRepository,
		tankRepo repository.TankConfigRepository,
	) error) error
}

// SessionReportGenerator genera el PDF de cierre de una sesión.
type SessionReportGenerator interface {
	GenerateSessionPDF(ctx context.Context, center *entity.Center, s *entity.DailySession) ([]byte, error)
}

// Settings parámetros comunes de los casos de uso de producción.
type Settings struct {
	LunchBreakMinutes int
	Location          *time.Location
	Now               func() time.Time
	Calculator        *production.TankCalculator
}

func (s Settings) withDefaults() Settings {
	if s.Location == nil {
		s.Location = time.UTC
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	if s.Calculator == nil {
		s.Calculator = production.NewTankCalculator(nil)
	}
	return s
}

// DefaultSettings descuento de almuerzo estándar, UTC y reloj del sistema.
func DefaultSettings() Settings {
	return Settings{LunchBreakMinutes: production.DefaultLunchBreakMinutes}.withDefaults()
}
