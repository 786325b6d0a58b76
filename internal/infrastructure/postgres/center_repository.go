package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
)

var _ repository.CenterRepository = (*CenterRepo)(nil)

// CenterRepo lectura de centros.
type CenterRepo struct {
	q Querier
}

// NewCenterRepository construye el adaptador.
func NewCenterRepository(q Querier) *CenterRepo {
	return &CenterRepo{q: q}
}

// GetByID obtiene un centro; (nil, nil) si no existe.
func (r *CenterRepo) GetByID(ctx context.Context, id string) (*entity.Center, error) {
	var c entity.Center
	err := r.q.QueryRow(ctx, `SELECT id, code, name, timezone, created_at FROM centers WHERE id = $1`, id).
		Scan(&c.ID, &c.Code, &c.Name, &c.Timezone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get center: %w", err)
	}
	return &c, nil
}
