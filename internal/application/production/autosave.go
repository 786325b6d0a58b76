package production

import (
	"context"

	"github.com/jhoicas/produccion-glp-api/internal/application/dto"
	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/production"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
	"github.com/jhoicas/produccion-glp-api/pkg/logger"
)

// AutosaveUseCase guarda el formulario parcial de una sesión en curso.
type AutosaveUseCase struct {
	txRunner TxRunner
	registry repository.FieldRegistry
	settings Settings
	log      *logger.Logger
}

// NewAutosaveUseCase construye el caso de uso.
func NewAutosaveUseCase(txRunner TxRunner, registry repository.FieldRegistry, settings Settings, log *logger.Logger) *AutosaveUseCase {
	return &AutosaveUseCase{txRunner: txRunner, registry: registry, settings: settings.withDefaults(), log: log}
}

// Autosave aplica una actualización parcial: solo se escriben los campos informados.
// Las lecturas AUTOMATIC incompletas o fuera de rango se guardan como borrador sin error.
func (uc *AutosaveUseCase) Autosave(ctx context.Context, sessionID, centerID string, in dto.AutosaveRequest) (*dto.AutosaveResponse, error) {
	if errs := validateScalars(in.ScalarFields, in.Appros, in.Sorties); len(errs) > 0 {
		return nil, errs
	}
	fields, err := uc.registry.ListByCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}

	now := uc.settings.Now()
	err = uc.txRunner.Run(ctx, func(sessionRepo repository.SessionRepository, tankRepo repository.TankConfigRepository) error {
		s, err := loadEditable(ctx, sessionRepo, sessionID, centerID)
		if err != nil {
			return err
		}
		applyScalars(s, in.ScalarFields)

		appros, sorties := resolvePayloadDynamic(s.ID, fields, in.Appros, in.Sorties, uc.log)
		if upserts := append(appros, sorties...); len(upserts) > 0 {
			if err := sessionRepo.UpsertDynamicValues(ctx, s.ID, upserts); err != nil {
				return err
			}
		}

		if in.Bouteilles != nil {
			if err := applyBottles(s, in.Bouteilles); err != nil {
				return err
			}
			if err := sessionRepo.ReplaceBottleEntries(ctx, s.ID, s.Bottles); err != nil {
				return err
			}
		}

		if in.Reservoirs != nil {
			readings, err := computeTanks(ctx, tankRepo, uc.settings.Calculator, s, in.Reservoirs, production.PolicyDraft, uc.log)
			if err != nil {
				return err
			}
			if err := sessionRepo.ReplaceTankReadings(ctx, s.ID, readings); err != nil {
				return err
			}
		} else if in.DensiteAmbiante != nil {
			changed, err := refreshPercentageReadings(ctx, tankRepo, uc.settings.Calculator, s)
			if err != nil {
				return err
			}
			if changed {
				if err := sessionRepo.ReplaceTankReadings(ctx, s.ID, s.Tanks); err != nil {
					return err
				}
			}
		}

		s.UpdatedAt = now
		return sessionRepo.UpdateScalars(ctx, s)
	})
	if err != nil {
		if !domain.IsClientError(err) {
			uc.log.Error().Err(err).Str("session_id", sessionID).Msg("autosave fallido")
		}
		return nil, err
	}
	return &dto.AutosaveResponse{SavedAt: now}, nil
}
