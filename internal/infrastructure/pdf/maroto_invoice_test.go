package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/pdf"
)

func TestGenerateInvoicePDF_ProduceBytesPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()

	issue := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	invoice := &entity.Invoice{
		ID:        "11111111-1111-1111-1111-111111111111",
		ClientID:  "22222222-2222-2222-2222-222222222222",
		Amount:    decimal.RequireFromString("329800"),
		IssueDate: &issue,
		Status:    entity.StatusPending,
	}
	client := &entity.Client{
		ID:      invoice.ClientID,
		Name:    "Comercializadora Andina SAS",
		Email:   "contacto@andina.example.com",
		Address: "Cra 7 # 45-12, Bogotá",
	}
	lines := []billing.InvoiceLineForPDF{
		{ProductName: "Teclado mecánico", Quantity: 1, UnitPrice: decimal.RequireFromString("189900"), Subtotal: decimal.RequireFromString("189900")},
		{ProductName: "Mouse inalámbrico", Quantity: 2, UnitPrice: decimal.RequireFromString("69950"), Subtotal: decimal.RequireFromString("139900")},
	}

	out, err := g.GenerateInvoicePDF(context.Background(), invoice, client, lines)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "la salida debe ser un documento PDF")
}

func TestGenerateInvoicePDF_SinLineas_NoFalla(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()

	invoice := &entity.Invoice{
		ID:       "33333333-3333-3333-3333-333333333333",
		ClientID: "44444444-4444-4444-4444-444444444444",
		Amount:   decimal.Zero,
		Status:   entity.StatusPending,
	}
	client := &entity.Client{ID: invoice.ClientID, Name: "Cliente sin compras"}

	out, err := g.GenerateInvoicePDF(context.Background(), invoice, client, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out, "una factura sin líneas igual produce documento")
}
