package production

import (
	"context"
	"fmt"

	"github.com/jhoicas/produccion-glp-api/internal/application/dto"
	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/production"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
	"github.com/jhoicas/produccion-glp-api/pkg/logger"
)

// CloseSessionUseCase valida el formulario completo, concilia y cierra la sesión.
type CloseSessionUseCase struct {
	txRunner TxRunner
	registry repository.FieldRegistry
	settings Settings
	log      *logger.Logger
}

// NewCloseSessionUseCase construye el caso de uso.
func NewCloseSessionUseCase(txRunner TxRunner, registry repository.FieldRegistry, settings Settings, log *logger.Logger) *CloseSessionUseCase {
	return &CloseSessionUseCase{txRunner: txRunner, registry: registry, settings: settings.withDefaults(), log: log}
}

// Close recalcula cada reservorio en modo estricto, agrega botellas, calcula tiempos y el
// balance teórico/físico, y persiste todo con estado CLOSED en una sola transacción.
// Ante cualquier error de validación no se escribe nada.
func (uc *CloseSessionUseCase) Close(ctx context.Context, sessionID, centerID, userID string, in dto.CloseSessionRequest) (*dto.SessionResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if errs := validateScalars(in.ScalarFields, in.Appros, in.Sorties); len(errs) > 0 {
		return nil, errs
	}
	fields, err := uc.registry.ListByCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}

	now := uc.settings.Now()
	var closed *entity.DailySession
	err = uc.txRunner.Run(ctx, func(sessionRepo repository.SessionRepository, tankRepo repository.TankConfigRepository) error {
		s, err := loadEditable(ctx, sessionRepo, sessionID, centerID)
		if err != nil {
			return err
		}
		applyScalars(s, in.ScalarFields)

		var errs domain.ValidationErrors

		approValues, sortieValues := resolvePayloadDynamic(s.ID, fields, in.Appros, in.Sorties, uc.log)
		s.Appros = mergeDynamic(s.Appros, approValues)
		s.Sorties = mergeDynamic(s.Sorties, sortieValues)
		checkRequiredFields(&errs, fields, s)

		if in.Bouteilles == nil {
			errs.Add("bouteilles", "requerido al cerrar")
		} else if err := collect(&errs, applyBottles(s, in.Bouteilles)); err != nil {
			return err
		}

		if in.Reservoirs == nil {
			errs.Add("reservoirs", "requerido al cerrar")
		} else {
			readings, err := computeTanks(ctx, tankRepo, uc.settings.Calculator, s, in.Reservoirs, production.PolicyStrict, uc.log)
			if err := collect(&errs, err); err != nil {
				return err
			}
			s.Tanks = readings
		}

		wt, err := production.ComputeWorkTime(s.StartTime, s.EndTime, s.StartedAt, now, uc.settings.LunchBreakMinutes, s.DowntimeMinutes)
		if err := collect(&errs, err); err != nil {
			return err
		}
		if err := errs.Err(); err != nil {
			return err
		}

		res := production.Reconcile(production.ReconciliationInput{
			InitialPhysicalStock: s.InitialPhysicalStock,
			Appros:               s.Appros,
			Sorties:              s.Sorties,
			LegacyAppro:          s.LegacyApproTotal(),
			LegacySortie:         s.LegacySortieTotal(),
			BottleTonnage:        s.TotalBottleTonnage,
			Tanks:                s.Tanks,
		})
		applyWorkTime(s, wt)
		applyReconciliation(s, res)
		s.Status = entity.SessionStatusClosed
		s.ClosedBy = userID
		s.ClosedAt = &now
		s.UpdatedAt = now

		if upserts := append(approValues, sortieValues...); len(upserts) > 0 {
			if err := sessionRepo.UpsertDynamicValues(ctx, s.ID, upserts); err != nil {
				return err
			}
		}
		if err := sessionRepo.ReplaceBottleEntries(ctx, s.ID, s.Bottles); err != nil {
			return err
		}
		if err := sessionRepo.ReplaceTankReadings(ctx, s.ID, s.Tanks); err != nil {
			return err
		}
		if err := sessionRepo.UpdateScalars(ctx, s); err != nil {
			return err
		}
		closed = s
		return nil
	})
	if err != nil {
		if !domain.IsClientError(err) {
			uc.log.Error().Err(err).Str("session_id", sessionID).Msg("cierre de sesión fallido")
		}
		return nil, err
	}

	uc.log.Info().
		Str("session_id", closed.ID).
		Str("center_id", closed.CenterID).
		Str("theoretical", closed.TheoreticalFinalStock.String()).
		Str("physical", closed.PhysicalFinalStock.String()).
		Str("variance", closed.Variance.String()).
		Msg("sesión cerrada")
	return ToSessionResponse(closed), nil
}

// checkRequiredFields exige un valor para cada campo obligatorio del registro,
// considerando lo ya guardado por autosave más lo enviado al cerrar.
func checkRequiredFields(errs *domain.ValidationErrors, fields []entity.DynamicField, s *entity.DailySession) {
	present := make(map[string]bool, len(s.Appros)+len(s.Sorties))
	for _, v := range s.Appros {
		present[v.FieldID] = true
	}
	for _, v := range s.Sorties {
		present[v.FieldID] = true
	}
	for _, f := range fields {
		if !f.Required || present[f.ID] {
			continue
		}
		prefix := "appros."
		if f.Kind == entity.FieldKindSortie {
			prefix = "sorties."
		}
		errs.Add(prefix+f.Name, fmt.Sprintf("%s es obligatorio", f.Label))
	}
}

func applyWorkTime(s *entity.DailySession, wt production.WorkTime) {
	s.TotalMinutes = wt.TotalMinutes
	s.DowntimeMinutes = wt.DowntimeMinutes
	s.UsefulMinutes = wt.UsefulMinutes
	s.YieldPercent = wt.YieldPercent
}

func applyReconciliation(s *entity.DailySession, r production.ReconciliationResult) {
	s.TotalAppro = r.TotalAppro
	s.TotalBulkSorties = r.TotalBulkSorties
	s.CumulSortie = r.CumulSortie
	s.TheoreticalFinalStock = r.TheoreticalFinalStock
	s.PhysicalFinalStock = r.PhysicalFinalStock
	s.Variance = r.Variance
	s.VariancePercent = r.VariancePercent
}
