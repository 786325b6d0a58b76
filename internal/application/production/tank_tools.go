package production

import (
	"context"
	"fmt"

	"github.com/jhoicas/produccion-glp-api/internal/application/dto"
	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/production"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TankToolsUseCase ayudas de cálculo sin persistencia (vista previa del formulario).
type TankToolsUseCase struct {
	tankRepo repository.TankConfigRepository
	settings Settings
}

// NewTankToolsUseCase construye el caso de uso.
func NewTankToolsUseCase(tankRepo repository.TankConfigRepository, settings Settings) *TankToolsUseCase {
	return &TankToolsUseCase{tankRepo: tankRepo, settings: settings.withDefaults()}
}

// ListTanks reservorios configurados del centro.
func (uc *TankToolsUseCase) ListTanks(ctx context.Context, centerID string) ([]*entity.TankConfig, error) {
	return uc.tankRepo.ListByCenter(ctx, centerID)
}

// Calculate calcula una lectura en modo estricto, tal como se haría al cerrar.
func (uc *TankToolsUseCase) Calculate(ctx context.Context, centerID, tankID string, in dto.TankCalculateRequest) (*dto.TankReadingResponse, error) {
	cfg, err := uc.config(ctx, centerID, tankID)
	if err != nil {
		return nil, err
	}
	reading := tankInputToReading("", in.TankInput)
	if reading.Name == "" {
		reading.Name = cfg.Name
	}
	res, err := uc.settings.Calculator.Compute(reading, cfg, in.DensiteAmbiante, production.PolicyStrict)
	if err != nil {
		return nil, err
	}
	out := toTankResponse(res.Reading, res.Warnings)
	return &out, nil
}

// SphericalVolume estima el volumen líquido a partir de la altura (solo esferas AUTOMATIC).
func (uc *TankToolsUseCase) SphericalVolume(ctx context.Context, centerID, tankID string, heightMM decimal.Decimal) (*dto.TankVolumeResponse, error) {
	cfg, err := uc.config(ctx, centerID, tankID)
	if err != nil {
		return nil, err
	}
	if cfg.Shape != entity.TankShapeSphere || cfg.Mode != entity.TankModeAutomatic {
		return nil, fmt.Errorf("%w: el reservorio %s no es una esfera en modo AUTOMATIC", domain.ErrInvalidInput, cfg.Name)
	}
	v, err := production.SphericalVolume(cfg.CapacityVolume, heightMM)
	if err != nil {
		return nil, err
	}
	return &dto.TankVolumeResponse{TankConfigID: cfg.ID, Height: heightMM, LiquidVolume: v}, nil
}

// CorrectionFactors consulta la tabla de corrección para una temperatura.
func (uc *TankToolsUseCase) CorrectionFactors(temperature decimal.Decimal) dto.CorrectionFactorsResponse {
	f, clamped := uc.settings.Calculator.Table().Lookup(temperature)
	return dto.CorrectionFactorsResponse{
		Temperature: temperature,
		Liquid:      f.Liquid,
		Vapor:       f.Vapor,
		Clamped:     clamped,
	}
}

func (uc *TankToolsUseCase) config(ctx context.Context, centerID, tankID string) (*entity.TankConfig, error) {
	cfg, err := uc.tankRepo.GetByID(ctx, tankID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, domain.ErrNotFound
	}
	if centerID != "" && cfg.CenterID != centerID {
		return nil, domain.ErrForbidden
	}
	return cfg, nil
}
