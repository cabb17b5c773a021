// Package pdf implementa el reporte de inventario en PDF (Maroto v2).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Inventario + fecha + tasa Bs/USD        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Categoría | Exist. | Mín. | USD | Bs     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de productos / en reposición / valor USD    │
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/abasto-api/internal/application/usecase"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 57}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.StockReportGenerator = (*StockReportGenerator)(nil)

// StockReportGenerator implementa usecase.StockReportGenerator usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes. rate nil significa
// que no hubo tasa disponible: la columna Bs sale con "—".
func (g *StockReportGenerator) GenerateStockReport(
	_ context.Context,
	products []*entity.Product,
	rate *decimal.Decimal,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rate))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(products, rate) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(products))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + fecha (izq) y tasa usada para la columna Bs (der).
func headerRow(rate *decimal.Decimal) core.Row {
	rateLabel := "Tasa Bs/USD: no disponible"
	if rate != nil {
		rateLabel = "Tasa Bs/USD: " + rate.StringFixed(2)
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(rateLabel, props.Text{
				Size: 9, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Exist.", 1, align.Center),
		h("Mín.", 1, align.Center),
		h("Precio USD", 2, align.Right),
		h("Precio Bs", 2, align.Right),
	)
}

// tableRows: una fila por producto; los que están en reposición salen en rojo.
func tableRows(products []*entity.Product, rate *decimal.Decimal) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		rowColor := (*props.Color)(nil)
		if p.IsLowStock() {
			rowColor = colorAlert
		}
		priceBs := "—"
		if rate != nil {
			priceBs = p.Price.Mul(*rate).StringFixed(2)
		}
		cell := func(value string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(value, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: rowColor,
			}))
		}
		result = append(result, row.New(6).Add(
			cell(p.Name, 4, align.Left),
			cell(p.Category, 2, align.Left),
			cell(strconv.Itoa(p.Quantity), 1, align.Center),
			cell(strconv.Itoa(p.MinStock), 1, align.Center),
			cell("$"+p.Price.StringFixed(2), 2, align.Right),
			cell(priceBs, 2, align.Right),
		))
	}
	return result
}

// summaryRow: totales del catálogo.
func summaryRow(products []*entity.Product) core.Row {
	lowStock := 0
	totalValue := decimal.Zero
	for _, p := range products {
		if p.IsLowStock() {
			lowStock++
		}
		totalValue = totalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Productos: %d   |   En reposición: %d   |   Valor total: $%s",
				len(products), lowStock, totalValue.StringFixed(2),
			), props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Align: align.Right}),
		),
	)
}
