package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/internal/infrastructure/pdf"
)

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func closedSession() *entity.DailySession {
	closedAt := time.Date(2026, 3, 10, 17, 45, 0, 0, time.UTC)
	start, end := "07:00", "17:00"
	return &entity.DailySession{
		ID:                    "s-1",
		CenterID:              "c-1",
		Date:                  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:                entity.SessionStatusClosed,
		InitialPhysicalStock:  decimal.RequireFromString("1250.5"),
		TotalAppro:            decimal.RequireFromString("32"),
		TotalBulkSorties:      decimal.RequireFromString("12.25"),
		TotalBottleTonnage:    decimal.RequireFromString("8.4"),
		CumulSortie:           decimal.RequireFromString("20.65"),
		TheoreticalFinalStock: decimal.RequireFromString("1261.85"),
		PhysicalFinalStock:    decimal.RequireFromString("1259.1"),
		Variance:              decimal.RequireFromString("-2.75"),
		VariancePercent:       decimal.RequireFromString("-0.2179"),
		StartTime:             &start,
		EndTime:               &end,
		TotalMinutes:          540,
		DowntimeMinutes:       30,
		UsefulMinutes:         510,
		YieldPercent:          decimal.RequireFromString("94.44"),
		TotalBottlesProduced:  1200,
		Observations:          "Arrêt carrousel 30 min.",
		Tanks: []entity.TankReading{
			{Name: "Sphère 1", Mode: entity.TankModeAutomatic, Temperature: dp("20"), LiquidVolume: dp("500"),
				LiquidWeight: dp("251.475"), VaporWeight: dp("2.4"), TotalWeight: dp("253.875")},
			{Name: "Cigare 1", Mode: entity.TankModeManual, LiquidWeight: dp("1005.225"), VaporWeight: dp("0"), TotalWeight: dp("1005.225")},
		},
		Bottles: []entity.BottleEntry{
			{Type: entity.BottleB6, Quantity: 700, Tonnage: decimal.RequireFromString("4.2")},
			{Type: entity.BottleB12, Quantity: 500, Tonnage: decimal.RequireFromString("6.25")},
		},
		Appros:    []entity.DynamicValue{{FieldName: "butanier", Value: decimal.RequireFromString("32")}},
		StartedBy: "chef-1",
		StartedAt: time.Date(2026, 3, 10, 6, 55, 0, 0, time.UTC),
		ClosedBy:  "chef-1",
		ClosedAt:  &closedAt,
	}
}

func TestGenerateSessionPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	center := &entity.Center{ID: "c-1", Code: "DKR", Name: "Centre emplisseur de Dakar"}

	out, err := g.GenerateSessionPDF(context.Background(), center, closedSession())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe producir un documento PDF")
}

func TestGenerateSessionPDF_SinLecturas(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	s := closedSession()
	s.Tanks, s.Bottles, s.Appros = nil, nil, nil
	s.Observations = ""

	out, err := g.GenerateSessionPDF(context.Background(), &entity.Center{Name: "Centre"}, s)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
