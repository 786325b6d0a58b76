package repository

import (
	"context"

	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
)

// FieldRegistry registro externo de campos dinámicos (appro/sortie) por centro.
type FieldRegistry interface {
	ListByCenter(ctx context.Context, centerID string) ([]entity.DynamicField, error)
}
