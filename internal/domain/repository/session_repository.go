package repository

import (
	"context"
	"time"

	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
)

// SessionFilter filtros para listar sesiones de un centro.
type SessionFilter struct {
	CenterID string
	From     *time.Time
	To       *time.Time
	Status   string
	Limit    int
	Offset   int
}

// SessionRepository define el puerto de persistencia de DailySession y sus colecciones.
// Las implementaciones aceptan pool o tx; dentro de TxRunner todas las llamadas comparten la tx.
// GetByID/GetForUpdate devuelven (nil, nil) si la sesión no existe.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.DailySession) error
	GetByID(ctx context.Context, id string) (*entity.DailySession, error)
	// GetForUpdate carga la sesión completa bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.DailySession, error)
	GetByCenterAndDate(ctx context.Context, centerID string, date time.Time) (*entity.DailySession, error)
	// LatestClosedBefore devuelve la última sesión CLOSED del centro anterior a date.
	LatestClosedBefore(ctx context.Context, centerID string, date time.Time) (*entity.DailySession, error)
	List(ctx context.Context, f SessionFilter) ([]*entity.DailySession, int, error)
	ListInProgressBefore(ctx context.Context, date time.Time) ([]*entity.DailySession, error)

	// UpdateScalars persiste los campos escalares, tiempos, conciliación y estado.
	UpdateScalars(ctx context.Context, s *entity.DailySession) error
	// UpsertDynamicValues crea o sobrescribe por (session_id, field_id).
	UpsertDynamicValues(ctx context.Context, sessionID string, values []entity.DynamicValue) error
	// ReplaceTankReadings reemplaza la colección completa de lecturas de la sesión.
	ReplaceTankReadings(ctx context.Context, sessionID string, readings []entity.TankReading) error
	// ReplaceBottleEntries reemplaza la colección completa de botellas de la sesión.
	ReplaceBottleEntries(ctx context.Context, sessionID string, entries []entity.BottleEntry) error
}
