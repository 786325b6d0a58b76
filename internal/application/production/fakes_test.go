package production_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/domain/repository"
)

var errBoom = errors.New("fallo de base de datos simulado")

// memStore estado persistido en memoria; el txRunner trabaja sobre una copia y solo la
// publica si fn termina sin error.
type memStore struct {
	sessions map[string]*entity.DailySession
	tanks    map[string]*entity.TankConfig
	failOn   string // nombre del método del repositorio que debe fallar
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[string]*entity.DailySession),
		tanks:    make(map[string]*entity.TankConfig),
	}
}

func (m *memStore) clone() *memStore {
	out := newMemStore()
	out.failOn = m.failOn
	for id, s := range m.sessions {
		out.sessions[id] = cloneSession(s)
	}
	for id, t := range m.tanks {
		cp := *t
		out.tanks[id] = &cp
	}
	return out
}

func cloneSession(s *entity.DailySession) *entity.DailySession {
	cp := *s
	cp.Tanks = append([]entity.TankReading(nil), s.Tanks...)
	cp.Bottles = append([]entity.BottleEntry(nil), s.Bottles...)
	cp.Appros = append([]entity.DynamicValue(nil), s.Appros...)
	cp.Sorties = append([]entity.DynamicValue(nil), s.Sorties...)
	return &cp
}

// session devuelve la sesión persistida (fuera de toda tx).
func (m *memStore) session(id string) *entity.DailySession {
	return m.sessions[id]
}

type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(repository.SessionRepository, repository.TankConfigRepository) error) error {
	work := r.store.clone()
	if err := fn(&memSessionRepo{store: work}, &memTankRepo{store: work}); err != nil {
		return err
	}
	r.store.sessions = work.sessions
	return nil
}

type memSessionRepo struct {
	store *memStore
}

func (r *memSessionRepo) fail(method string) error {
	if r.store.failOn == method {
		return errBoom
	}
	return nil
}

func (r *memSessionRepo) Create(ctx context.Context, s *entity.DailySession) error {
	if err := r.fail("Create"); err != nil {
		return err
	}
	for _, existing := range r.store.sessions {
		if existing.CenterID == s.CenterID && existing.Date.Equal(s.Date) {
			return domain.ErrConflict
		}
	}
	r.store.sessions[s.ID] = cloneSession(s)
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id string) (*entity.DailySession, error) {
	s, ok := r.store.sessions[id]
	if !ok {
		return nil, nil
	}
	return cloneSession(s), nil
}

func (r *memSessionRepo) GetForUpdate(ctx context.Context, id string) (*entity.DailySession, error) {
	return r.GetByID(ctx, id)
}

func (r *memSessionRepo) GetByCenterAndDate(ctx context.Context, centerID string, date time.Time) (*entity.DailySession, error) {
	for _, s := range r.store.sessions {
		if s.CenterID == centerID && s.Date.Equal(date) {
			return cloneSession(s), nil
		}
	}
	return nil, nil
}

func (r *memSessionRepo) LatestClosedBefore(ctx context.Context, centerID string, date time.Time) (*entity.DailySession, error) {
	var latest *entity.DailySession
	for _, s := range r.store.sessions {
		if s.CenterID != centerID || s.Status != entity.SessionStatusClosed || !s.Date.Before(date) {
			continue
		}
		if latest == nil || s.Date.After(latest.Date) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	return cloneSession(latest), nil
}

func (r *memSessionRepo) List(ctx context.Context, f repository.SessionFilter) ([]*entity.DailySession, int, error) {
	var all []*entity.DailySession
	for _, s := range r.store.sessions {
		if s.CenterID != f.CenterID || (f.Status != "" && s.Status != f.Status) {
			continue
		}
		if f.From != nil && s.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && s.Date.After(*f.To) {
			continue
		}
		all = append(all, cloneSession(s))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	total := len(all)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (r *memSessionRepo) ListInProgressBefore(ctx context.Context, date time.Time) ([]*entity.DailySession, error) {
	var out []*entity.DailySession
	for _, s := range r.store.sessions {
		if s.Status == entity.SessionStatusInProgress && s.Date.Before(date) {
			out = append(out, cloneSession(s))
		}
	}
	return out, nil
}

func (r *memSessionRepo) UpdateScalars(ctx context.Context, s *entity.DailySession) error {
	if err := r.fail("UpdateScalars"); err != nil {
		return err
	}
	current, ok := r.store.sessions[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := cloneSession(s)
	cp.Tanks, cp.Bottles, cp.Appros, cp.Sorties = current.Tanks, current.Bottles, current.Appros, current.Sorties
	r.store.sessions[s.ID] = cp
	return nil
}

func (r *memSessionRepo) UpsertDynamicValues(ctx context.Context, sessionID string, values []entity.DynamicValue) error {
	if err := r.fail("UpsertDynamicValues"); err != nil {
		return err
	}
	s := r.store.sessions[sessionID]
	for _, v := range values {
		target := &s.Appros
		if v.Kind == entity.FieldKindSortie {
			target = &s.Sorties
		}
		replaced := false
		for i := range *target {
			if (*target)[i].FieldID == v.FieldID {
				(*target)[i] = v
				replaced = true
			}
		}
		if !replaced {
			*target = append(*target, v)
		}
	}
	return nil
}

func (r *memSessionRepo) ReplaceTankReadings(ctx context.Context, sessionID string, readings []entity.TankReading) error {
	if err := r.fail("ReplaceTankReadings"); err != nil {
		return err
	}
	r.store.sessions[sessionID].Tanks = append([]entity.TankReading(nil), readings...)
	return nil
}

func (r *memSessionRepo) ReplaceBottleEntries(ctx context.Context, sessionID string, entries []entity.BottleEntry) error {
	if err := r.fail("ReplaceBottleEntries"); err != nil {
		return err
	}
	r.store.sessions[sessionID].Bottles = append([]entity.BottleEntry(nil), entries...)
	return nil
}

type memTankRepo struct {
	store *memStore
}

func (r *memTankRepo) GetByID(ctx context.Context, id string) (*entity.TankConfig, error) {
	t, ok := r.store.tanks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTankRepo) ListByCenter(ctx context.Context, centerID string) ([]*entity.TankConfig, error) {
	var out []*entity.TankConfig
	for _, t := range r.store.tanks {
		if t.CenterID == centerID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memRegistry struct {
	fields []entity.DynamicField
}

func (r *memRegistry) ListByCenter(ctx context.Context, centerID string) ([]entity.DynamicField, error) {
	var out []entity.DynamicField
	for _, f := range r.fields {
		if f.CenterID == centerID {
			out = append(out, f)
		}
	}
	return out, nil
}

type memCenterRepo struct {
	centers map[string]*entity.Center
}

func (r *memCenterRepo) GetByID(ctx context.Context, id string) (*entity.Center, error) {
	return r.centers[id], nil
}

type stubReport struct {
	called bool
}

func (g *stubReport) GenerateSessionPDF(ctx context.Context, center *entity.Center, s *entity.DailySession) ([]byte, error) {
	g.called = true
	return []byte("%PDF-1.4"), nil
}
