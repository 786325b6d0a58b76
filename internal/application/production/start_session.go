package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/produccion-glp-api/internal/application/dto"
	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
	"github.com/jhoicas/produccion-glp-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// StartSessionUseCase abre la jornada de un centro (una sola sesión por centro y fecha).
type StartSessionUseCase struct {
	txRunner TxRunner
	settings Settings
	log      *logger.Logger
}

// NewStartSessionUseCase construye el caso de uso.
func NewStartSessionUseCase(txRunner TxRunner, settings Settings, log *logger.Logger) *StartSessionUseCase {
	return &StartSessionUseCase{txRunner: txRunner, settings: settings.withDefaults(), log: log}
}

// Start crea la sesión en IN_PROGRESS. Si no se informa stock inicial se toma el stock físico
// final de la última sesión cerrada del centro (0 si no hay ninguna).
func (uc *StartSessionUseCase) Start(ctx context.Context, centerID, userID string, in dto.StartSessionRequest) (*dto.SessionResponse, error) {
	if centerID == "" || userID == "" {
		return nil, domain.ErrUnauthorized
	}
	now := uc.settings.Now()
	date, err := uc.sessionDate(in.Date, now)
	if err != nil {
		return nil, err
	}
	if in.InitialPhysicalStock != nil && in.InitialPhysicalStock.IsNegative() {
		return nil, domain.ValidationErrors{{Field: "stockInitial", Message: "no puede ser negativo"}}
	}

	var created *entity.DailySession
	err = uc.txRunner.Run(ctx, func(sessionRepo repository.SessionRepository, _ repository.TankConfigRepository) error {
		existing, err := sessionRepo.GetByCenterAndDate(ctx, centerID, date)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: ya existe la sesión %s para %s", domain.ErrConflict, existing.ID, date.Format(dateLayout))
		}

		initial := decimal.Zero
		if in.InitialPhysicalStock != nil {
			initial = *in.InitialPhysicalStock
		} else {
			prev, err := sessionRepo.LatestClosedBefore(ctx, centerID, date)
			if err != nil {
				return err
			}
			if prev != nil {
				initial = prev.PhysicalFinalStock
			}
		}

		s := &entity.DailySession{
			ID:                   uuid.New().String(),
			CenterID:             centerID,
			Date:                 date,
			Status:               entity.SessionStatusInProgress,
			InitialPhysicalStock: initial,
			StartedBy:            userID,
			StartedAt:            now,
			UpdatedAt:            now,
		}
		if err := sessionRepo.Create(ctx, s); err != nil {
			return err
		}
		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("session_id", created.ID).
		Str("center_id", centerID).
		Str("date", created.Date.Format(dateLayout)).
		Str("initial_stock", created.InitialPhysicalStock.String()).
		Msg("sesión iniciada")
	return ToSessionResponse(created), nil
}

func (uc *StartSessionUseCase) sessionDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		local := now.In(uc.settings.Location)
		return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.settings.Location), nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, uc.settings.Location)
	if err != nil {
		return time.Time{}, domain.ValidationErrors{{Field: "date", Message: fmt.Sprintf("fecha %q inválida, formato AAAA-MM-DD", raw)}}
	}
	return d, nil
}
