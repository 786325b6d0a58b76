package repository

import (
	"context"

	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
)

// CenterRepository puerto de solo lectura para centros.
type CenterRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Center, error)
}
