package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
)

var _ repository.TankConfigRepository = (*TankConfigRepo)(nil)

// TankConfigRepo lectura de tank_configs (usable con pool o tx).
type TankConfigRepo struct {
	q Querier
}

// NewTankConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTankConfigRepository(q Querier) *TankConfigRepo {
	return &TankConfigRepo{q: q}
}

const tankConfigColumns = `id, center_id, name, shape, capacity_volume, capacity_weight, mode, created_at, updated_at`

func scanTankConfig(row pgx.Row) (*entity.TankConfig, error) {
	var t entity.TankConfig
	err := row.Scan(&t.ID, &t.CenterID, &t.Name, &t.Shape, &t.CapacityVolume, &t.CapacityWeight, &t.Mode, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID configuración de un reservorio; (nil, nil) si no existe.
func (r *TankConfigRepo) GetByID(ctx context.Context, id string) (*entity.TankConfig, error) {
	t, err := scanTankConfig(r.q.QueryRow(ctx, `SELECT `+tankConfigColumns+` FROM tank_configs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tank config: %w", err)
	}
	return t, nil
}

// ListByCenter reservorios del centro ordenados por nombre.
func (r *TankConfigRepo) ListByCenter(ctx context.Context, centerID string) ([]*entity.TankConfig, error) {
	rows, err := r.q.Query(ctx, `SELECT `+tankConfigColumns+` FROM tank_configs WHERE center_id = $1 ORDER BY name`, centerID)
	if err != nil {
		return nil, fmt.Errorf("list tank configs: %w", err)
	}
	defer rows.Close()
	var list []*entity.TankConfig
	for rows.Next() {
		t, err := scanTankConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tank config: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
