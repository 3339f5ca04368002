// Package pdf genera y transforma los PDF del lote: el resumen de decomisos (Maroto) y el
// recorte de páginas del PDF exportado de la plantilla (pdfcpu).
//
// Layout del resumen (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Lote + fecha de generación                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CANTIDADES: Individuo | Órgano | Cantidad | Unidad | Secc.  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MOTIVOS: Individuo | Órgano | Patología | Total             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: filas por tabla + decomisos totales                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/jeronimo114/comcer2/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// DecomisosReport implementa lote.DecomisosRenderer usando Maroto v2.
type DecomisosReport struct {
	now func() time.Time
}

// NewDecomisosReport construye el generador.
func NewDecomisosReport() *DecomisosReport { return &DecomisosReport{now: time.Now} }

// RenderDecomisos genera el PDF y devuelve sus bytes.
func (g *DecomisosReport) RenderDecomisos(batch string, d *entity.Decomisos) ([]byte, error) {
	if d == nil {
		d = &entity.Decomisos{}
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Decomisos lote "+batch, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(batch, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("CANTIDADES DECOMISADAS"))
	m.AddRows(tableHeaderRow([]string{"Individuo", "Órgano", "Cantidad", "Unidad", "Sección"}, []int{2, 3, 2, 2, 3}))
	for _, r := range cantidadRows(d.Cantidades) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("MOTIVOS"))
	m.AddRows(tableHeaderRow([]string{"Individuo", "Órgano", "Patología", "Total"}, []int{2, 3, 5, 2}))
	for _, r := range motivoRows(d.Motivos) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(d))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(batch string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("RESUMEN DE DECOMISOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Lote "+batch, props.Text{
				Size: 10, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
		})))
	}
	return row.New(7).Add(cols...)
}

func cantidadRows(items []entity.DecomisoCantidad) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(items))
	for _, c := range items {
		rows = append(rows, row.New(6).Add(
			cell(2, c.Individuo, nil),
			cell(3, c.Organo, nil),
			cell(2, c.Cantidad, nil),
			cell(2, c.Unidad, nil),
			cell(3, c.Seccion, colorGray),
		))
	}
	return rows
}

func motivoRows(items []entity.DecomisoMotivo) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(items))
	for _, m := range items {
		total, color := "NO", (*props.Color)(nil)
		if m.DecomisoTotal {
			total, color = "SI", colorAlert
		}
		rows = append(rows, row.New(6).Add(
			cell(2, m.Individuo, nil),
			cell(3, m.Organo, nil),
			cell(5, m.Patologia, nil),
			cell(2, total, color),
		))
	}
	return rows
}

func totalsRow(d *entity.Decomisos) core.Row {
	totales := 0
	for _, m := range d.Motivos {
		if m.DecomisoTotal {
			totales++
		}
	}
	return row.New(10).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Cantidades: %d   |   Motivos: %d   |   Decomisos totales: %d",
				len(d.Cantidades), len(d.Motivos), totales),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3, Right: 1},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cell(size int, value string, color *props.Color) core.Col {
	p := props.Text{Size: 8, Top: 1, Left: 1}
	if color != nil {
		p.Color = color
	}
	return col.New(size).Add(text.New(nonEmpty(value, "—"), p))
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Sin registros", props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
