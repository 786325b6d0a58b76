package production

import (
	"context"
	"time"

	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
	"github.com/jhoicas/produccion-glp-api/pkg/logger"
)

// StaleSessionsUseCase detecta sesiones IN_PROGRESS de días anteriores. No las cierra:
// el cierre exige las lecturas físicas del operador.
type StaleSessionsUseCase struct {
	sessionRepo repository.SessionRepository
	settings    Settings
	log         *logger.Logger
}

// NewStaleSessionsUseCase construye el caso de uso.
func NewStaleSessionsUseCase(sessionRepo repository.SessionRepository, settings Settings, log *logger.Logger) *StaleSessionsUseCase {
	return &StaleSessionsUseCase{sessionRepo: sessionRepo, settings: settings.withDefaults(), log: log}
}

// Sweep registra un aviso por cada sesión abierta anterior a hoy y devuelve cuántas hay.
func (uc *StaleSessionsUseCase) Sweep(ctx context.Context) (int, error) {
	local := uc.settings.Now().In(uc.settings.Location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.settings.Location)

	stale, err := uc.sessionRepo.ListInProgressBefore(ctx, today)
	if err != nil {
		return 0, err
	}
	for _, s := range stale {
		uc.log.Warn().
			Str("session_id", s.ID).
			Str("center_id", s.CenterID).
			Str("date", s.Date.Format(dateLayout)).
			Msg("sesión abierta de un día anterior sin cerrar")
	}
	return len(stale), nil
}
