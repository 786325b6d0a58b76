package repository

import (
	"context"

	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
)

// TankConfigRepository puerto de solo lectura para la configuración de reservorios.
// GetByID devuelve (nil, nil) si no existe.
type TankConfigRepository interface {
	GetByID(ctx context.Context, id string) (*entity.TankConfig, error)
	ListByCenter(ctx context.Context, centerID string) ([]*entity.TankConfig, error)
}
