// Package pdf genera el reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de emisión │ generado por           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Equipamento | Categoria | Local | Status | Qtd.      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: itens / unidades / sem estoque                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 200, Green: 30, Blue: 30}
)

// MarotoReportGenerator implementa analytics.InventoryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	// LowStockThreshold cantidades <= al umbral se resaltan.
	LowStockThreshold int
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator(lowStockThreshold int) *MarotoReportGenerator {
	return &MarotoReportGenerator{LowStockThreshold: lowStockThreshold}
}

// GenerateInventoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryPDF(
	_ context.Context,
	items []*entity.Equipment,
	generatedAt time.Time,
	generatedBy string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Inventário", true).
		WithAuthor(generatedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt, generatedBy))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableRows(items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(generatedAt time.Time, generatedBy string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("RELATÓRIO DE INVENTÁRIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido em "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado por", props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 2,
			}),
			text.New(nonEmpty(generatedBy, "—"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Equipamento", 4, align.Left),
		h("Categoria", 2, align.Left),
		h("Localização", 3, align.Left),
		h("Status", 2, align.Left),
		h("Qtd.", 1, align.Right),
	)
}

// tableRows una fila por equipo; el stock bajo se marca en rojo.
func (g *MarotoReportGenerator) tableRows(items []*entity.Equipment) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Nenhum equipamento cadastrado.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(items))
	for _, e := range items {
		qty := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if e.Quantity <= g.LowStockThreshold {
			qty.Style = fontstyle.Bold
			qty.Color = colorDanger
		}
		cell := props.Text{Size: 8, Top: 1, Left: 1}
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(e.Name, cell)),
			col.New(2).Add(text.New(nonEmpty(entity.Deref(e.Category), "—"), cell)),
			col.New(3).Add(text.New(nonEmpty(entity.Deref(e.Location), "—"), cell)),
			col.New(2).Add(text.New(nonEmpty(entity.Deref(e.Status), "—"), cell)),
			col.New(1).Add(text.New(formatThousands(e.Quantity), qty)),
		))
	}
	return rows
}

func totalsRow(items []*entity.Equipment) core.Row {
	units, empty := 0, 0
	for _, e := range items {
		units += e.Quantity
		if e.Quantity == 0 {
			empty++
		}
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(4).Add(
			label("Itens:"),
			label("Unidades em estoque:"),
			label("Sem estoque:"),
		),
		col.New(2).Add(
			value(strconv.Itoa(len(items))),
			value(formatThousands(units)),
			value(strconv.Itoa(empty)),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatThousands inserta puntos de miles. Ej: 25000 -> "25.000".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	l := len(s)
	if l <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, l+l/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
