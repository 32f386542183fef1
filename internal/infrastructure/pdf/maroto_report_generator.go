// Package pdf implementa la exportación del reporte de stock a PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período         │  Fecha de emisión       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCCIÓN/VENTA: Material | Producido | Vendido | Unidad   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK ACTUAL: Material | Stock | Unidad                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tekeliveli/stoktakip/internal/application/dto"
	"github.com/tekeliveli/stoktakip/internal/application/inventory"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ inventory.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa inventory.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
	now     func() time.Time
}

// NewMarotoReportGenerator construye el generador. Las cantidades se imprimen con
// separador de miles en español.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{
		printer: message.NewPrinter(language.Spanish),
		now:     time.Now,
	}
}

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReportPDF(
	_ context.Context,
	from, to time.Time,
	lines []dto.ReportLineResponse,
	levels []dto.StockLevelResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("PRODUCCIÓN Y VENTA DEL PERÍODO"))
	m.AddRows(tableHeaderRow("Material", "Producido", "Vendido", "Unidad"))
	if len(lines) == 0 {
		m.AddRows(emptyRow("Sin movimientos en el período."))
	}
	for _, l := range lines {
		m.AddRows(tableRow(l.Name, g.qty(l.TotalProduced), g.qty(l.TotalSold), l.Unit))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow("STOCK ACTUAL"))
	m.AddRows(tableHeaderRow("Material", "Stock", "", "Unidad"))
	if len(levels) == 0 {
		m.AddRows(emptyRow("No hay materiales registrados."))
	}
	for _, s := range levels {
		m.AddRows(tableRow(s.Name, g.qty(s.CurrentStock), "", s.Unit))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReportGenerator) headerRow(from, to time.Time) core.Row {
	periodo := fmt.Sprintf("Período: %s al %s", from.Format("02/01/2006"), to.Format("02/01/2006"))
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(periodo, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Emitido: "+g.now().Format("02/01/2006 15:04"), props.Text{
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

func tableHeaderRow(name, a, b, unit string) core.Row {
	h := func(label string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: al, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h(name, 6, align.Left),
		h(a, 2, align.Right),
		h(b, 2, align.Right),
		h(unit, 2, align.Center),
	)
}

func tableRow(name, a, b, unit string) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(a, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(b, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
	)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

// qty formatea con el separador de miles del locale: 1000000 → "1.000.000".
func (g *MarotoReportGenerator) qty(n int64) string {
	return g.printer.Sprintf("%d", n)
}
