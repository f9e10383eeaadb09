// Package pdf genera el reporte de analítica del sistema en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + generado por   │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TARJETAS: Usuarios / Medicamentos / Dosis / Vínculos        │
//	│  USUARIOS POR ROL                                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Detalle (actividad reciente)          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/medicare-console/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const maxDetailChars = 90

// AnalyticsRenderer implementa ports.ReportRenderer usando Maroto v2.
type AnalyticsRenderer struct {
	title cases.Caser
}

// NewAnalyticsRenderer construye el renderer.
func NewAnalyticsRenderer() *AnalyticsRenderer {
	return &AnalyticsRenderer{title: cases.Title(language.English)}
}

// RenderAnalytics genera el PDF y devuelve sus bytes.
func (r *AnalyticsRenderer) RenderAnalytics(report dto.AnalyticsReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor(nonEmpty(report.GeneratedBy, "MediCare Admin"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(cardsRow(report.Analytics))
	m.AddRows(r.rolesRows(report.Analytics.Users)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("RECENT ACTIVITY"))
	m.AddRows(activityHeaderRow())
	if len(report.Activity) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("No recent activity", props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
		)))
	}
	for _, a := range report.Activity {
		m.AddRows(r.activityRow(a))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report dto.AnalyticsReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Generated by: "+nonEmpty(report.GeneratedBy, "—"), props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("MEDICARE ADMIN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// cardsRow: las cuatro tarjetas del dashboard.
func cardsRow(a dto.SystemAnalytics) core.Row {
	card := func(label string, value int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(strconv.Itoa(value), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Align: align.Center, Top: 6,
			}),
		)
	}
	return row.New(18).Add(
		card("Total Users", a.Users.Total),
		card("Medications", a.Medications),
		card("Doses Logged", a.Doses),
		card("Caretaker Links", a.CaretakerPatientLinks),
	)
}

// rolesRows: conteo por rol en orden alfabético.
func (r *AnalyticsRenderer) rolesRows(u dto.UserCounts) []core.Row {
	if len(u.ByRole) == 0 {
		return nil
	}
	roles := make([]string, 0, len(u.ByRole))
	for k := range u.ByRole {
		roles = append(roles, k)
	}
	sort.Strings(roles)

	parts := make([]string, 0, len(roles))
	for _, k := range roles {
		parts = append(parts, fmt.Sprintf("%s: %d", r.title.String(k), u.ByRole[k]))
	}
	return []core.Row{
		sectionRow("USERS BY ROLE"),
		row.New(7).Add(col.New(12).Add(
			text.New(strings.Join(parts, "   |   "), props.Text{Size: 8, Top: 1, Color: colorGray}),
		)),
	}
}

func sectionRow(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func activityHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(h("Date", 3), h("Type", 2), h("Detail", 7))
}

func (r *AnalyticsRenderer) activityRow(a dto.ActivityEntry) core.Row {
	return row.New(7).Add(
		col.New(3).Add(text.New(a.Timestamp, props.Text{Size: 7.5, Top: 1, Left: 1, Color: colorGray})),
		col.New(2).Add(text.New(r.title.String(strings.ReplaceAll(a.Type, "_", " ")), props.Text{Size: 7.5, Top: 1, Left: 1})),
		col.New(7).Add(text.New(truncate(a.Message, maxDetailChars), props.Text{Size: 7.5, Top: 1, Left: 1})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// truncate corta s a n runas agregando "...".
func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-3]) + "..."
}
