// Package pdf implementa la representación PDF de una factura con Maroto v2.
//
// Layout de la página A4:
//
//	┌────────────────────────────────────────────────────────┐
//	│                       INVOICE                          │
//	│  Cliente (izq)           │  N° factura, fecha, estado  │
//	│  ────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Precio | Cant | Total               │
//	│  ────────────────────────────────────────────────────  │
//	│                              Total a pagar (derecha)   │
//	└────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	appbilling "github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes. Función pura sobre
// la factura ya ensamblada: no consulta repos ni muta estado.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	client *entity.Client,
	lines []appbilling.InvoiceLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+invoice.ID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow())
	m.AddRows(infoRow(invoice, client))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(invoice.Amount))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 18, Align: align.Center, Color: colorPrimary,
			}),
		),
	)
}

// infoRow: cliente a la izquierda; número, fecha y estado a la derecha.
func infoRow(invoice *entity.Invoice, client *entity.Client) core.Row {
	issueDate := "N/A"
	if invoice.IssueDate != nil {
		issueDate = invoice.IssueDate.Format("2006-01-02")
	}
	return row.New(20).Add(
		col.New(6).Add(
			text.New("Cliente:", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New(client.Name, props.Text{Size: 9, Top: 6}),
			text.New(client.Address, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Factura #: "+invoice.ID, props.Text{Size: 8, Align: align.Right, Top: 1}),
			text.New("Fecha: "+issueDate, props.Text{Size: 9, Align: align.Right, Top: 6}),
			text.New("Estado: "+invoice.Status, props.Text{Size: 9, Align: align.Right, Top: 11}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(8).Add(
		header("Producto", 6),
		header("Precio", 2),
		header("Cant.", 2),
		header("Total", 2),
	)
}

func tableLineRows(lines []appbilling.InvoiceLineForPDF) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(l.ProductName, props.Text{Size: 9, Top: 1})),
			col.New(2).Add(text.New(money(l.UnitPrice), props.Text{Size: 9, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 9, Top: 1})),
			col.New(2).Add(text.New(money(l.Subtotal), props.Text{Size: 9, Top: 1})),
		))
	}
	return rows
}

func totalRow(amount decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Total: "+money(amount), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
		),
	)
}

func money(d decimal.Decimal) string {
	return "$" + d.Round(2).StringFixed(2)
}
