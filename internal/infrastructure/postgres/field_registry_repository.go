package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
)

var _ repository.FieldRegistry = (*FieldRegistryRepo)(nil)

// FieldRegistryRepo campos dinámicos activos por centro (tabla center_fields).
type FieldRegistryRepo struct {
	q Querier
}

// NewFieldRegistryRepository construye el adaptador.
func NewFieldRegistryRepository(q Querier) *FieldRegistryRepo {
	return &FieldRegistryRepo{q: q}
}

// ListByCenter campos activos del centro, en orden de presentación.
func (r *FieldRegistryRepo) ListByCenter(ctx context.Context, centerID string) ([]entity.DynamicField, error) {
	query := `
		SELECT id, center_id, kind, name, label, required, position
		FROM center_fields
		WHERE center_id = $1 AND active
		ORDER BY kind, position, name`
	rows, err := r.q.Query(ctx, query, centerID)
	if err != nil {
		return nil, fmt.Errorf("list center fields: %w", err)
	}
	defer rows.Close()
	var list []entity.DynamicField
	for rows.Next() {
		var f entity.DynamicField
		if err := rows.Scan(&f.ID, &f.CenterID, &f.Kind, &f.Name, &f.Label, &f.Required, &f.Position); err != nil {
			return nil, fmt.Errorf("scan center field: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
