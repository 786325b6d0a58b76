package production_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/produccion-glp-api/internal/application/dto"
	"github.com/jhoicas/produccion-glp-api/internal/application/production"
	"github.com/jhoicas/produccion-glp-api/internal/domain"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTankTools_Calculate(t *testing.T) {
	f := newFixture()
	tools := production.NewTankToolsUseCase(&memTankRepo{store: f.store}, f.settings)

	res, err := tools.Calculate(context.Background(), centerID, "sphere-1", dto.TankCalculateRequest{
		TankInput: dto.TankInput{
			Height:           p("1000"),
			Temperature:      p("20"),
			VaporTemperature: p("20"),
			LiquidVolume:     p("500"),
			InternalPressure: p("1"),
			DensityAt15C:     p("0.508"),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.LiquidWeight)
	assert.True(t, res.LiquidWeight.Equal(d("251.475")))
	assert.Equal(t, "Sphère 1", res.Name)

	_, err = tools.Calculate(context.Background(), centerID, "sphere-1", dto.TankCalculateRequest{})
	assert.True(t, errors.Is(err, domain.ErrValidation), "la vista previa es estricta")
}

func TestTankTools_SphericalVolume(t *testing.T) {
	f := newFixture()
	tools := production.NewTankToolsUseCase(&memTankRepo{store: f.store}, f.settings)
	ctx := context.Background()

	res, err := tools.SphericalVolume(ctx, centerID, "sphere-1", d("0"))
	require.NoError(t, err)
	assert.True(t, res.LiquidVolume.IsZero())

	_, err = tools.SphericalVolume(ctx, centerID, "manual-1", d("1000"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "solo esferas AUTOMATIC")

	_, err = tools.SphericalVolume(ctx, centerID, "other-center", d("1000"))
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = tools.SphericalVolume(ctx, centerID, "missing", d("1000"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTankTools_CorrectionFactors(t *testing.T) {
	tools := production.NewTankToolsUseCase(&memTankRepo{store: newMemStore()}, production.DefaultSettings())

	res := tools.CorrectionFactors(d("20"))
	assert.True(t, res.Liquid.Equal(d("0.00505")))
	assert.False(t, res.Clamped)

	res = tools.CorrectionFactors(d("40"))
	assert.True(t, res.Clamped)
}

func TestReport_SoloSesionesCerradas(t *testing.T) {
	f := newFixture()
	id := f.startSession(t, "100")
	gen := &stubReport{}
	centers := &memCenterRepo{centers: map[string]*entity.Center{
		centerID: {ID: centerID, Code: "DKR", Name: "Centre emplisseur Dakar"},
	}}
	report := production.NewReportUseCase(&memSessionRepo{store: f.store}, centers, gen)
	ctx := context.Background()

	_, _, err := report.SessionPDF(ctx, centerID, id)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.False(t, gen.called)

	_, err = f.close.Close(ctx, id, centerID, userID, closeRequest())
	require.NoError(t, err)

	pdf, name, err := report.SessionPDF(ctx, centerID, id)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "produccion_DKR_2026-03-10.pdf", name)
}

func TestStaleSessions_Sweep(t *testing.T) {
	store := newMemStore()
	store.sessions["yesterday"] = &entity.DailySession{
		ID: "yesterday", CenterID: centerID, Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Status: entity.SessionStatusInProgress,
	}
	store.sessions["today"] = &entity.DailySession{
		ID: "today", CenterID: centerID, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Status: entity.SessionStatusInProgress,
	}
	store.sessions["closed"] = &entity.DailySession{
		ID: "closed", CenterID: centerID, Date: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), Status: entity.SessionStatusClosed,
	}
	settings := production.Settings{Location: time.UTC, Now: func() time.Time { return fixedNow }}
	uc := production.NewStaleSessionsUseCase(&memSessionRepo{store: store}, settings, logger.Nop())

	n, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, entity.SessionStatusInProgress, store.sessions["yesterday"].Status, "el barrido no cierra sesiones")
}
