package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/produccion-glp-api/pkg/logger"
)

// Sweeper barrido de sesiones IN_PROGRESS de días anteriores.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// Scheduler ejecuta las tareas periódicas del servicio.
type Scheduler struct {
	cron    *cron.Cron
	expr    string
	sweeper Sweeper
	timeout time.Duration
	log     *logger.Logger
}

// New crea el scheduler. expr es una expresión cron estándar de 5 campos,
// evaluada en la zona horaria de los centros.
func New(expr string, loc *time.Location, sweeper Sweeper, log *logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		expr:    expr,
		sweeper: sweeper,
		timeout: 2 * time.Minute,
		log:     log,
	}
}

// Start registra las tareas y arranca el cron en segundo plano.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.expr, s.sweepStale); err != nil {
		return fmt.Errorf("scheduler: cron inválido %q: %w", s.expr, err)
	}
	s.log.Info().Str("cron", s.expr).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la tarea en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) sweepStale() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("barrido de sesiones abiertas falló")
		return
	}
	s.log.Info().Int("stale_sessions", n).Msg("barrido de sesiones abiertas")
}
