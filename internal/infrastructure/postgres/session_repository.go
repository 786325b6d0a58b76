package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre PostgreSQL (usable con pool o tx).
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

const sessionColumns = `
	id, center_id, session_date, status, initial_physical_stock,
	butanier, recuperation, appro_sar, ngabou, exports, divers, observations,
	start_time, end_time, total_minutes, downtime_minutes, useful_minutes, yield_percent,
	shared_ambient_density, total_appro, total_bulk_sorties, total_bottle_tonnage, cumul_sortie,
	theoretical_final_stock, physical_final_stock, variance, variance_percent, total_bottles_produced,
	started_by, started_at, closed_by, closed_at, updated_at`

func scanSession(row pgx.Row) (*entity.DailySession, error) {
	var s entity.DailySession
	var closedBy *string
	err := row.Scan(
		&s.ID, &s.CenterID, &s.Date, &s.Status, &s.InitialPhysicalStock,
		&s.Butanier, &s.Recuperation, &s.ApproSAR, &s.Ngabou, &s.Exports, &s.Divers, &s.Observations,
		&s.StartTime, &s.EndTime, &s.TotalMinutes, &s.DowntimeMinutes, &s.UsefulMinutes, &s.YieldPercent,
		&s.SharedAmbientDensity, &s.TotalAppro, &s.TotalBulkSorties, &s.TotalBottleTonnage, &s.CumulSortie,
		&s.TheoreticalFinalStock, &s.PhysicalFinalStock, &s.Variance, &s.VariancePercent, &s.TotalBottlesProduced,
		&s.StartedBy, &s.StartedAt, &closedBy, &s.ClosedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.ClosedBy = derefStr(closedBy)
	return &s, nil
}

// Create inserta la cabecera de la sesión. (center_id, session_date) es único.
func (r *SessionRepo) Create(ctx context.Context, s *entity.DailySession) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO daily_sessions (id, center_id, session_date, status, initial_physical_stock, started_by, started_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CenterID, s.Date, s.Status, s.InitialPhysicalStock, s.StartedBy, s.StartedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe una sesión para el centro en %s", domain.ErrConflict, s.Date.Format("2006-01-02"))
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID obtiene la sesión completa (con reservorios, botellas y valores dinámicos).
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.DailySession, error) {
	return r.getOne(ctx, `SELECT `+sessionColumns+` FROM daily_sessions WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila de la sesión hasta el fin de la tx.
func (r *SessionRepo) GetForUpdate(ctx context.Context, id string) (*entity.DailySession, error) {
	return r.getOne(ctx, `SELECT `+sessionColumns+` FROM daily_sessions WHERE id = $1 FOR UPDATE`, id)
}

// GetByCenterAndDate sesión de un centro en una fecha.
func (r *SessionRepo) GetByCenterAndDate(ctx context.Context, centerID string, date time.Time) (*entity.DailySession, error) {
	return r.getOne(ctx,
		`SELECT `+sessionColumns+` FROM daily_sessions WHERE center_id = $1 AND session_date = $2`,
		centerID, date)
}

func (r *SessionRepo) getOne(ctx context.Context, query string, args ...any) (*entity.DailySession, error) {
	s, err := scanSession(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if err := r.loadChildren(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// LatestClosedBefore última sesión cerrada del centro anterior a date (solo cabecera).
func (r *SessionRepo) LatestClosedBefore(ctx context.Context, centerID string, date time.Time) (*entity.DailySession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM daily_sessions
		WHERE center_id = $1 AND status = $2 AND session_date < $3
		ORDER BY session_date DESC
		LIMIT 1`
	s, err := scanSession(r.q.QueryRow(ctx, query, centerID, entity.SessionStatusClosed, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest closed session: %w", err)
	}
	return s, nil
}

// List lista cabeceras con filtros y total para paginación.
func (r *SessionRepo) List(ctx context.Context, f repository.SessionFilter) ([]*entity.DailySession, int, error) {
	where := []string{"center_id = $1"}
	args := []any{f.CenterID}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("session_date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("session_date <= $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM daily_sessions WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM daily_sessions WHERE %s ORDER BY session_date DESC LIMIT $%d OFFSET $%d`,
		sessionColumns, cond, len(args)-1, len(args))
	sessions, err := r.queryHeaders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// ListInProgressBefore sesiones abiertas de cualquier centro con fecha anterior a date.
func (r *SessionRepo) ListInProgressBefore(ctx context.Context, date time.Time) ([]*entity.DailySession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM daily_sessions
		WHERE status = $1 AND session_date < $2
		ORDER BY session_date, center_id`
	return r.queryHeaders(ctx, query, entity.SessionStatusInProgress, date)
}

func (r *SessionRepo) queryHeaders(ctx context.Context, query string, args ...any) ([]*entity.DailySession, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.DailySession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateScalars persiste campos escalares, tiempos, conciliación y estado.
func (r *SessionRepo) UpdateScalars(ctx context.Context, s *entity.DailySession) error {
	query := `
		UPDATE daily_sessions
		SET status = $2, initial_physical_stock = $3,
		    butanier = $4, recuperation = $5, appro_sar = $6, ngabou = $7, exports = $8, divers = $9,
		    observations = $10, start_time = $11, end_time = $12,
		    total_minutes = $13, downtime_minutes = $14, useful_minutes = $15, yield_percent = $16,
		    shared_ambient_density = $17,
		    total_appro = $18, total_bulk_sorties = $19, total_bottle_tonnage = $20, cumul_sortie = $21,
		    theoretical_final_stock = $22, physical_final_stock = $23, variance = $24, variance_percent = $25,
		    total_bottles_produced = $26, closed_by = $27, closed_at = $28, updated_at = $29
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Status, s.InitialPhysicalStock,
		s.Butanier, s.Recuperation, s.ApproSAR, s.Ngabou, s.Exports, s.Divers,
		s.Observations, s.StartTime, s.EndTime,
		s.TotalMinutes, s.DowntimeMinutes, s.UsefulMinutes, s.YieldPercent,
		s.SharedAmbientDensity,
		s.TotalAppro, s.TotalBulkSorties, s.TotalBottleTonnage, s.CumulSortie,
		s.TheoreticalFinalStock, s.PhysicalFinalStock, s.Variance, s.VariancePercent,
		s.TotalBottlesProduced, nullIfEmpty(s.ClosedBy), s.ClosedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpsertDynamicValues crea o sobrescribe valores por (session_id, field_id) en un solo batch.
func (r *SessionRepo) UpsertDynamicValues(ctx context.Context, sessionID string, values []entity.DynamicValue) error {
	if len(values) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, v := range values {
		batch.Queue(`
			INSERT INTO session_dynamic_values (session_id, field_id, value, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (session_id, field_id)
			DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			sessionID, v.FieldID, v.Value)
	}
	return r.sendBatch(ctx, batch, "upsert dynamic values")
}

// ReplaceTankReadings borra y reinserta todas las lecturas de la sesión.
func (r *SessionRepo) ReplaceTankReadings(ctx context.Context, sessionID string, readings []entity.TankReading) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM session_tank_readings WHERE session_id = $1`, sessionID)
	for i := range readings {
		t := &readings[i]
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		batch.Queue(`
			INSERT INTO session_tank_readings (
				id, session_id, tank_config_id, position, name, mode,
				height, temperature, vapor_temperature, liquid_volume, internal_pressure, density_at_15c, fill_percentage,
				liquid_correction_factor, vapor_correction_factor, ambient_density, liquid_weight, vapor_weight, total_weight)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
			t.ID, sessionID, t.TankConfigID, i, t.Name, t.Mode,
			t.Height, t.Temperature, t.VaporTemperature, t.LiquidVolume, t.InternalPressure, t.DensityAt15C, t.FillPercentage,
			t.LiquidCorrectionFactor, t.VaporCorrectionFactor, t.AmbientDensity, t.LiquidWeight, t.VaporWeight, t.TotalWeight,
		)
	}
	return r.sendBatch(ctx, batch, "replace tank readings")
}

// ReplaceBottleEntries borra y reinserta todas las botellas de la sesión.
func (r *SessionRepo) ReplaceBottleEntries(ctx context.Context, sessionID string, entries []entity.BottleEntry) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM session_bottle_entries WHERE session_id = $1`, sessionID)
	for i := range entries {
		b := &entries[i]
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		batch.Queue(`
			INSERT INTO session_bottle_entries (id, session_id, position, bottle_type, quantity, tonnage)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			b.ID, sessionID, i, b.Type, b.Quantity, b.Tonnage)
	}
	return r.sendBatch(ctx, batch, "replace bottle entries")
}

func (r *SessionRepo) sendBatch(ctx context.Context, batch *pgx.Batch, op string) error {
	br := r.q.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *SessionRepo) loadChildren(ctx context.Context, s *entity.DailySession) error {
	tanks, err := r.tankReadings(ctx, s.ID)
	if err != nil {
		return err
	}
	bottles, err := r.bottleEntries(ctx, s.ID)
	if err != nil {
		return err
	}
	values, err := r.dynamicValues(ctx, s.ID)
	if err != nil {
		return err
	}
	s.Tanks = tanks
	s.Bottles = bottles
	for _, v := range values {
		if v.Kind == entity.FieldKindSortie {
			s.Sorties = append(s.Sorties, v)
		} else {
			s.Appros = append(s.Appros, v)
		}
	}
	return nil
}

func (r *SessionRepo) tankReadings(ctx context.Context, sessionID string) ([]entity.TankReading, error) {
	query := `
		SELECT id, session_id, tank_config_id, name, mode,
		       height, temperature, vapor_temperature, liquid_volume, internal_pressure, density_at_15c, fill_percentage,
		       liquid_correction_factor, vapor_correction_factor, ambient_density, liquid_weight, vapor_weight, total_weight
		FROM session_tank_readings WHERE session_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list tank readings: %w", err)
	}
	defer rows.Close()
	var list []entity.TankReading
	for rows.Next() {
		var t entity.TankReading
		if err := rows.Scan(
			&t.ID, &t.SessionID, &t.TankConfigID, &t.Name, &t.Mode,
			&t.Height, &t.Temperature, &t.VaporTemperature, &t.LiquidVolume, &t.InternalPressure, &t.DensityAt15C, &t.FillPercentage,
			&t.LiquidCorrectionFactor, &t.VaporCorrectionFactor, &t.AmbientDensity, &t.LiquidWeight, &t.VaporWeight, &t.TotalWeight,
		); err != nil {
			return nil, fmt.Errorf("scan tank reading: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *SessionRepo) bottleEntries(ctx context.Context, sessionID string) ([]entity.BottleEntry, error) {
	query := `
		SELECT id, session_id, bottle_type, quantity, tonnage
		FROM session_bottle_entries WHERE session_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list bottle entries: %w", err)
	}
	defer rows.Close()
	var list []entity.BottleEntry
	for rows.Next() {
		var b entity.BottleEntry
		if err := rows.Scan(&b.ID, &b.SessionID, &b.Type, &b.Quantity, &b.Tonnage); err != nil {
			return nil, fmt.Errorf("scan bottle entry: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *SessionRepo) dynamicValues(ctx context.Context, sessionID string) ([]entity.DynamicValue, error) {
	query := `
		SELECT v.session_id, v.field_id, f.name, f.kind, v.value
		FROM session_dynamic_values v
		JOIN center_fields f ON f.id = v.field_id
		WHERE v.session_id = $1
		ORDER BY f.kind, f.position, f.name`
	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list dynamic values: %w", err)
	}
	defer rows.Close()
	var list []entity.DynamicValue
	for rows.Next() {
		var v entity.DynamicValue
		if err := rows.Scan(&v.SessionID, &v.FieldID, &v.FieldName, &v.Kind, &v.Value); err != nil {
			return nil, fmt.Errorf("scan dynamic value: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
