package production

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/produccion-glp-api/internal/application/dto"
	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
)

// SessionQueryUseCase consultas de solo lectura sobre sesiones (con alcance de centro).
type SessionQueryUseCase struct {
	sessionRepo repository.SessionRepository
	settings    Settings
}

// NewSessionQueryUseCase construye el caso de uso.
func NewSessionQueryUseCase(sessionRepo repository.SessionRepository, settings Settings) *SessionQueryUseCase {
	return &SessionQueryUseCase{sessionRepo: sessionRepo, settings: settings.withDefaults()}
}

// Get devuelve la sesión completa si pertenece al centro.
func (uc *SessionQueryUseCase) Get(ctx context.Context, centerID, id string) (*dto.SessionResponse, error) {
	s, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkScope(s, centerID); err != nil {
		return nil, err
	}
	return ToSessionResponse(s), nil
}

// GetByDate devuelve la sesión del centro para la fecha YYYY-MM-DD.
func (uc *SessionQueryUseCase) GetByDate(ctx context.Context, centerID, date string) (*dto.SessionResponse, error) {
	d, err := time.ParseInLocation(dateLayout, date, uc.settings.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q, formato AAAA-MM-DD", domain.ErrInvalidInput, date)
	}
	s, err := uc.sessionRepo.GetByCenterAndDate(ctx, centerID, d)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return ToSessionResponse(s), nil
}

// ListQuery filtros del listado (fechas YYYY-MM-DD opcionales).
type ListQuery struct {
	From   string
	To     string
	Status string
	dto.PageRequest
}

// List lista las sesiones del centro, más recientes primero.
func (uc *SessionQueryUseCase) List(ctx context.Context, centerID string, q ListQuery) (*dto.SessionListResponse, error) {
	q.DefaultPage()
	if q.Limit > 100 {
		q.Limit = 100
	}
	f := repository.SessionFilter{CenterID: centerID, Status: q.Status, Limit: q.Limit, Offset: q.Offset}
	switch q.Status {
	case "", entity.SessionStatusInProgress, entity.SessionStatusClosed, entity.SessionStatusArchived:
	default:
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, q.Status)
	}
	var err error
	if f.From, err = uc.optionalDate(q.From); err != nil {
		return nil, err
	}
	if f.To, err = uc.optionalDate(q.To); err != nil {
		return nil, err
	}

	sessions, total, err := uc.sessionRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SessionSummaryResponse, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, toSummary(s))
	}
	return &dto.SessionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

func (uc *SessionQueryUseCase) optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, uc.settings.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q, formato AAAA-MM-DD", domain.ErrInvalidInput, raw)
	}
	return &d, nil
}

func checkScope(s *entity.DailySession, centerID string) error {
	if s == nil {
		return domain.ErrNotFound
	}
	if centerID != "" && s.CenterID != centerID {
		return domain.ErrForbidden
	}
	return nil
}
