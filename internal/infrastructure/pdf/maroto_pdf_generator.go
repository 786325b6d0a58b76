// Package pdf genera el informe de cierre de una jornada de producción GLP.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Centro + código     │  Rapport journalier + fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILAN: stock initial / appro / sorties / théorique / écart  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RÉSERVOIRS: Nom | Mode | T° | Volume | Liquide | Gaz | Total │
//	│  BOUTEILLES: Type | Quantité | Tonnage                       │
//	│  APPROS / SORTIES dinámicos                                  │
//	│  TEMPS: début / fin / arrêts / utile / rendement             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: cierre (usuario, hora) + QR de trazabilidad         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appproduction "github.com/jhoicas/produccion-glp-api/internal/application/production"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
)

var _ appproduction.SessionReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa production.SessionReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador (cifras con formato francés: 1 234,567).
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.French)}
}

// GenerateSessionPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSessionPDF(_ context.Context, center *entity.Center, s *entity.DailySession) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rapport de production journalière", true).
		WithAuthor(center.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(center, s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.balanceRows(s)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("RÉSERVOIRS"))
	m.AddRows(tableHeader([]headerCol{
		{"Réservoir", 3, align.Left}, {"Mode", 2, align.Left}, {"T° (°C)", 1, align.Right},
		{"Volume (m³)", 2, align.Right}, {"Liquide (T)", 1, align.Right}, {"Gaz (T)", 1, align.Right}, {"Total (T)", 2, align.Right},
	}))
	m.AddRows(g.tankRows(s.Tanks)...)

	m.AddRows(sectionTitle("BOUTEILLES"))
	m.AddRows(tableHeader([]headerCol{{"Type", 4, align.Left}, {"Quantité", 4, align.Right}, {"Tonnage (T)", 4, align.Right}}))
	m.AddRows(g.bottleRows(s)...)

	if len(s.Appros)+len(s.Sorties) > 0 {
		m.AddRows(sectionTitle("APPROVISIONNEMENTS / SORTIES"))
		m.AddRows(g.dynamicRows(s)...)
	}

	m.AddRows(sectionTitle("TEMPS DE TRAVAIL"))
	m.AddRows(g.workTimeRow(s))

	if s.Observations != "" {
		m.AddRows(sectionTitle("OBSERVATIONS"))
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New(s.Observations, props.Text{Size: 8, Top: 1}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRow(center, s))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe de sesión: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(center *entity.Center, s *entity.DailySession) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(center.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Centre: "+nonEmpty(center.Code, "—"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("RAPPORT DE PRODUCTION JOURNALIÈRE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(s.Date.Format("02/01/2006"), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Statut: "+s.Status, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

// balanceRows stock teórico vs físico.
func (g *MarotoPDFGenerator) balanceRows(s *entity.DailySession) []core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	varianceColor := colorPrimary
	if s.Variance.IsNegative() {
		varianceColor = colorAlert
	}

	pairs := []struct{ l, v string }{
		{"Stock initial (T):", g.tonnes(s.InitialPhysicalStock)},
		{"Approvisionnements (T):", g.tonnes(s.TotalAppro)},
		{"Sorties vrac (T):", g.tonnes(s.TotalBulkSorties)},
		{"Production bouteilles (T):", g.tonnes(s.TotalBottleTonnage)},
		{"Cumul sorties (T):", g.tonnes(s.CumulSortie)},
		{"Stock final théorique (T):", g.tonnes(s.TheoreticalFinalStock)},
		{"Stock final physique (T):", g.tonnes(s.PhysicalFinalStock)},
	}
	rows := make([]core.Row, 0, len(pairs)+1)
	for _, p := range pairs {
		rows = append(rows, row.New(5).Add(col.New(3), col.New(4).Add(label(p.l)), col.New(3).Add(value(p.v)), col.New(2)))
	}
	rows = append(rows, row.New(7).Add(
		col.New(3),
		col.New(4).Add(text.New("ÉCART:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: varianceColor, Right: 2})),
		col.New(3).Add(text.New(
			fmt.Sprintf("%s T (%s %%)", g.tonnes(s.Variance), g.number(s.VariancePercent, 2)),
			props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: varianceColor, Right: 1},
		)),
		col.New(2),
	))
	return rows
}

func (g *MarotoPDFGenerator) tankRows(tanks []entity.TankReading) []core.Row {
	if len(tanks) == 0 {
		return []core.Row{emptyRow("Aucun réservoir relevé")}
	}
	rows := make([]core.Row, 0, len(tanks))
	for _, t := range tanks {
		rows = append(rows, row.New(6).Add(
			cell(t.Name, 3, align.Left),
			cell(modeLabel(t.Mode), 2, align.Left),
			cell(g.optional(t.Temperature, 1), 1, align.Right),
			cell(g.optional(t.LiquidVolume, 3), 2, align.Right),
			cell(g.optional(t.LiquidWeight, 3), 1, align.Right),
			cell(g.optional(t.VaporWeight, 3), 1, align.Right),
			cell(g.optional(t.TotalWeight, 3), 2, align.Right),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) bottleRows(s *entity.DailySession) []core.Row {
	if len(s.Bottles) == 0 {
		return []core.Row{emptyRow("Aucune bouteille produite")}
	}
	rows := make([]core.Row, 0, len(s.Bottles)+1)
	for _, b := range s.Bottles {
		rows = append(rows, row.New(6).Add(
			cell(b.Type, 4, align.Left),
			cell(g.number(decimal.NewFromInt(int64(b.Quantity)), 0), 4, align.Right),
			cell(g.tonnes(b.Tonnage), 4, align.Right),
		))
	}
	rows = append(rows, row.New(6).Add(
		boldCell("Total", 4, align.Left),
		boldCell(g.number(decimal.NewFromInt(int64(s.TotalBottlesProduced)), 0), 4, align.Right),
		boldCell(g.tonnes(s.TotalBottleTonnage), 4, align.Right),
	))
	return rows
}

func (g *MarotoPDFGenerator) dynamicRows(s *entity.DailySession) []core.Row {
	rows := make([]core.Row, 0, len(s.Appros)+len(s.Sorties))
	add := func(prefix string, values []entity.DynamicValue) {
		for _, v := range values {
			rows = append(rows, row.New(5).Add(
				cell(prefix+v.FieldName, 8, align.Left),
				cell(g.tonnes(v.Value), 4, align.Right),
			))
		}
	}
	add("Appro · ", s.Appros)
	add("Sortie · ", s.Sorties)
	return rows
}

func (g *MarotoPDFGenerator) workTimeRow(s *entity.DailySession) core.Row {
	return row.New(10).Add(
		col.New(2).Add(text.New("Début: "+derefOr(s.StartTime, "—"), props.Text{Size: 8, Top: 2})),
		col.New(2).Add(text.New("Fin: "+derefOr(s.EndTime, "—"), props.Text{Size: 8, Top: 2})),
		col.New(2).Add(text.New("Total: "+minutes(s.TotalMinutes), props.Text{Size: 8, Top: 2})),
		col.New(2).Add(text.New("Arrêts: "+minutes(s.DowntimeMinutes), props.Text{Size: 8, Top: 2})),
		col.New(2).Add(text.New("Utile: "+minutes(s.UsefulMinutes), props.Text{Size: 8, Top: 2})),
		col.New(2).Add(text.New("Rendement: "+g.number(s.YieldPercent, 2)+" %", props.Text{Style: fontstyle.Bold, Size: 8, Top: 2})),
	)
}

func (g *MarotoPDFGenerator) footerRow(center *entity.Center, s *entity.DailySession) core.Row {
	closedAt := "—"
	if s.ClosedAt != nil {
		closedAt = s.ClosedAt.Format("02/01/2006 15:04")
	}
	trace := fmt.Sprintf("session:%s|centre:%s|date:%s|ecart:%s", s.ID, center.Code, s.Date.Format(time.DateOnly), s.Variance.String())
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(trace, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Clôturé par: "+nonEmpty(s.ClosedBy, "—"), props.Text{Size: 8, Top: 4, Left: 3}),
			text.New("Clôturé le: "+closedAt, props.Text{Size: 8, Top: 10, Left: 3}),
			text.New("Ouvert par: "+s.StartedBy+" le "+s.StartedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 16, Left: 3, Color: colorGray}),
			text.New("Document généré automatiquement à la clôture de la journée.", props.Text{Size: 6.5, Top: 26, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

type headerCol struct {
	label string
	size  int
	align align.Type
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3}),
	))
}

func tableHeader(cols []headerCol) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		out = append(out, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorGray, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(out...)
}

func cell(v string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(v, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func boldCell(v string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(v, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(msg, props.Text{Size: 8, Top: 1, Color: colorGray})))
}

func modeLabel(mode string) string {
	switch mode {
	case entity.TankModeAutomatic:
		return "Jauge"
	case entity.TankModePercentage:
		return "Pourcentage"
	case entity.TankModeManual:
		return "Manuel"
	}
	return mode
}

// tonnes formatea toneladas con 3 decimales.
func (g *MarotoPDFGenerator) tonnes(v decimal.Decimal) string {
	return g.number(v, 3)
}

// number formato francés con separador de miles simple (helvetica no incluye U+202F).
func (g *MarotoPDFGenerator) number(v decimal.Decimal, places int32) string {
	s := g.printer.Sprint(number.Decimal(v.Round(places).InexactFloat64(), number.Scale(int(places))))
	return groupSpaces.Replace(s)
}

var groupSpaces = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

func (g *MarotoPDFGenerator) optional(v *decimal.Decimal, places int32) string {
	if v == nil {
		return "—"
	}
	return g.number(*v, places)
}

func minutes(n int) string {
	return fmt.Sprintf("%dh%02d", n/60, n%60)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func derefOr(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}
