// Package pdf genera el reporte de pedidos en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + rango      │  Generado por + fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total | Borrador | En proceso | Completado | Canc. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Estado | Creado por | Contenido              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/jhoicas/ordersync-api/internal/application/ports"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 225, Green: 29, Blue: 72}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}

	statusColors = map[entity.OrderStatus]*props.Color{
		entity.OrderStatusDraft:      {Red: 202, Green: 138, Blue: 4},
		entity.OrderStatusProcessing: {Red: 37, Green: 99, Blue: 235},
		entity.OrderStatusCompleted:  {Red: 22, Green: 163, Blue: 74},
		entity.OrderStatusCancelled:  colorGray,
	}

	statusLabels = map[entity.OrderStatus]string{
		entity.OrderStatusDraft:      "Borrador",
		entity.OrderStatusProcessing: "En proceso",
		entity.OrderStatusCompleted:  "Completado",
		entity.OrderStatusCancelled:  "Cancelado",
	}
)

const (
	contentLineWidth = 70 // caracteres por línea de contenido en la tabla
	contentMaxLines  = 4
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.OrderReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ports.OrderReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateOrdersPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateOrdersPDF(_ context.Context, report ports.OrderReport) ([]byte, error) {
	if report.Company == nil {
		return nil, fmt.Errorf("pdf: reporte sin empresa")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de pedidos", true).
		WithAuthor(report.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report.Orders))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Orders) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay pedidos en el rango seleccionado.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(tableOrderRows(report)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + rango (izq) y autor + fecha de generación (der).
func headerRow(report ports.OrderReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Rango: "+nonEmpty(report.RangeLabel, "Todo"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE PEDIDOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado por: "+nonEmpty(report.GeneratedBy, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// summaryRow: conteo total y por estado.
func summaryRow(orders []*entity.Order) core.Row {
	counts := make(map[entity.OrderStatus]int, 4)
	for _, o := range orders {
		counts[o.Status]++
	}
	cell := func(label string, n int, color *props.Color) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(strconv.Itoa(n), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: color, Top: 5,
			}),
		)
	}
	return row.New(14).Add(
		col.New(1),
		cell("Total", len(orders), colorPrimary),
		cell(statusLabels[entity.OrderStatusDraft], counts[entity.OrderStatusDraft], statusColors[entity.OrderStatusDraft]),
		cell(statusLabels[entity.OrderStatusProcessing], counts[entity.OrderStatusProcessing], statusColors[entity.OrderStatusProcessing]),
		cell(statusLabels[entity.OrderStatusCompleted], counts[entity.OrderStatusCompleted], statusColors[entity.OrderStatusCompleted]),
		cell(statusLabels[entity.OrderStatusCancelled], counts[entity.OrderStatusCancelled], statusColors[entity.OrderStatusCancelled]),
		col.New(1),
	)
}

// tableHeaderRow: cabecera de la tabla de pedidos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Estado", 2, align.Center),
		h("Creado por", 2, align.Left),
		h("Contenido", 6, align.Left),
	)
}

// tableOrderRows: una fila por pedido; la altura crece con las líneas del contenido.
func tableOrderRows(report ports.OrderReport) []core.Row {
	loc := report.GeneratedAt.Location()
	result := make([]core.Row, 0, len(report.Orders))
	for _, o := range report.Orders {
		lines := contentLines(o.Content)
		height := float64(4*len(lines) + 3)

		content := col.New(6)
		for i, l := range lines {
			content.Add(text.New(l, props.Text{Size: 7.5, Top: float64(1 + 4*i), Left: 1}))
		}

		result = append(result, row.New(height).Add(
			col.New(2).Add(text.New(
				o.CreatedAt.In(loc).Format("02/01/2006 15:04"),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(statusLabels[o.Status], string(o.Status)),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColors[o.Status]},
			)),
			col.New(2).Add(text.New(
				nonEmpty(o.CreatorName, "—"),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			content,
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// contentLines parte el contenido del pedido en líneas de ancho fijo, respetando
// los saltos de línea originales y truncando con "…" al superar contentMaxLines.
func contentLines(s string) []string {
	var out []string
	for _, para := range strings.Split(strings.TrimSpace(s), "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		out = append(out, splitEvery(para, contentLineWidth)...)
	}
	if len(out) == 0 {
		return []string{"—"}
	}
	if len(out) > contentMaxLines {
		out = out[:contentMaxLines]
		out[contentMaxLines-1] += "…"
	}
	return out
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	r := []rune(s)
	var parts []string
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
