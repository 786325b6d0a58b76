package production

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/produccion-glp-api/internal/application/dto"
	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/production"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
	"github.com/jhoicas/produccion-glp-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// loadEditable bloquea la sesión y verifica centro y estado IN_PROGRESS.
func loadEditable(ctx context.Context, repo repository.SessionRepository, sessionID, centerID string) (*entity.DailySession, error) {
	s, err := repo.GetForUpdate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if centerID != "" && s.CenterID != centerID {
		return nil, domain.ErrForbidden
	}
	if !s.InProgress() {
		return nil, fmt.Errorf("%w: estado actual %s", domain.ErrSessionNotInProgress, s.Status)
	}
	return s, nil
}

// computeTanks recalcula todas las lecturas con la política indicada. Un reservorio
// desconocido o de otro centro es siempre un error de validación, también en borrador.
func computeTanks(
	ctx context.Context,
	tankRepo repository.TankConfigRepository,
	calc *production.TankCalculator,
	s *entity.DailySession,
	inputs []dto.TankInput,
	policy production.CalcPolicy,
	log *logger.Logger,
) ([]entity.TankReading, error) {
	readings := make([]entity.TankReading, 0, len(inputs))
	var errs domain.ValidationErrors
	for i, in := range inputs {
		prefix := fmt.Sprintf("reservoirs[%d].", i)
		if in.TankConfigID == "" {
			errs.Add(prefix+"tankConfigId", "requerido")
			continue
		}
		cfg, err := tankRepo.GetByID(ctx, in.TankConfigID)
		if err != nil {
			return nil, err
		}
		if cfg == nil || cfg.CenterID != s.CenterID {
			errs.Add(prefix+"tankConfigId", fmt.Sprintf("configuración de reservorio %q no encontrada", in.TankConfigID))
			continue
		}
		reading := tankInputToReading(s.ID, in)
		if reading.Name == "" {
			reading.Name = cfg.Name
		}
		res, err := calc.Compute(reading, cfg, s.SharedAmbientDensity, policy)
		if err != nil {
			var ve domain.ValidationErrors
			if errors.As(err, &ve) {
				errs = append(errs, ve.Prefixed(prefix)...)
				continue
			}
			return nil, err
		}
		for _, w := range res.Warnings {
			log.Warn().
				Str("session_id", s.ID).
				Str("tank", reading.Name).
				Str("policy", policy.String()).
				Msg(w)
		}
		readings = append(readings, res.Reading)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return readings, nil
}

// refreshPercentageReadings recalcula las lecturas PERCENTAGE_BASED guardadas con la densidad
// vigente de la sesión. Devuelve true si alguna lectura cambió y hay que persistir.
func refreshPercentageReadings(
	ctx context.Context,
	tankRepo repository.TankConfigRepository,
	calc *production.TankCalculator,
	s *entity.DailySession,
) (bool, error) {
	changed := false
	var errs domain.ValidationErrors
	for i, r := range s.Tanks {
		if r.Mode != entity.TankModePercentage {
			continue
		}
		cfg, err := tankRepo.GetByID(ctx, r.TankConfigID)
		if err != nil {
			return false, err
		}
		if cfg == nil || cfg.Mode != entity.TankModePercentage {
			continue
		}
		res, err := calc.Compute(r, cfg, s.SharedAmbientDensity, production.PolicyDraft)
		if err != nil {
			var ve domain.ValidationErrors
			if !errors.As(err, &ve) {
				return false, err
			}
			errs = append(errs, ve.Prefixed(fmt.Sprintf("reservoirs[%d].", i))...)
			continue
		}
		s.Tanks[i] = res.Reading
		changed = true
	}
	if err := errs.Err(); err != nil {
		return false, err
	}
	return changed, nil
}

// resolvePayloadDynamic resuelve appros/sorties del payload contra el registro del centro.
// Las claves no registradas se ignoran (se registran en debug).
func resolvePayloadDynamic(
	sessionID string,
	fields []entity.DynamicField,
	appros, sorties map[string]decimal.Decimal,
	log *logger.Logger,
) (approValues, sortieValues []entity.DynamicValue) {
	approValues, unknownA := resolveDynamic(sessionID, entity.FieldKindAppro, appros, fieldIndex(fields, entity.FieldKindAppro))
	sortieValues, unknownS := resolveDynamic(sessionID, entity.FieldKindSortie, sorties, fieldIndex(fields, entity.FieldKindSortie))
	if len(unknownA)+len(unknownS) > 0 {
		log.Debug().
			Str("session_id", sessionID).
			Strs("appros", unknownA).
			Strs("sorties", unknownS).
			Msg("campos dinámicos no registrados ignorados")
	}
	return approValues, sortieValues
}

// validateScalars rechaza cantidades negativas, también en borrador.
func validateScalars(in dto.ScalarFields, appros, sorties map[string]decimal.Decimal) domain.ValidationErrors {
	var errs domain.ValidationErrors
	for _, f := range []struct {
		name string
		v    *decimal.Decimal
	}{
		{"butanier", in.Butanier},
		{"recuperation", in.Recuperation},
		{"approSAR", in.ApproSAR},
		{"ngabou", in.Ngabou},
		{"exports", in.Exports},
		{"divers", in.Divers},
		{"densiteAmbiante", in.DensiteAmbiante},
	} {
		if f.v != nil && f.v.IsNegative() {
			errs.Add(f.name, "no puede ser negativo")
		}
	}
	if in.Arrets != nil && *in.Arrets < 0 {
		errs.Add("arrets", "no puede ser negativo")
	}
	for _, name := range sortedKeys(appros) {
		if appros[name].IsNegative() {
			errs.Add("appros."+name, "no puede ser negativo")
		}
	}
	for _, name := range sortedKeys(sorties) {
		if sorties[name].IsNegative() {
			errs.Add("sorties."+name, "no puede ser negativo")
		}
	}
	return errs
}

// collect acumula errores de validación en errs; cualquier otro error se devuelve tal cual.
func collect(errs *domain.ValidationErrors, err error) error {
	if err == nil {
		return nil
	}
	var ve domain.ValidationErrors
	if errors.As(err, &ve) {
		*errs = append(*errs, ve...)
		return nil
	}
	return err
}

// applyBottles agrega las botellas y actualiza los totales de la sesión.
func applyBottles(s *entity.DailySession, in []dto.BottleInput) error {
	summary, err := production.AggregateBottles(bottleInputs(s.ID, in))
	if err != nil {
		return err
	}
	s.Bottles = summary.Entries
	s.TotalBottleTonnage = summary.TotalTonnage
	s.TotalBottlesProduced = summary.TotalQuantity
	return nil
}
