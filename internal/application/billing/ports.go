package billing

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de catálogo, clientes y facturación. Si fn retorna error se hace
// rollback completo (garantía todo-o-nada del motor de facturación).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoiceLineForPDF línea con los datos resueltos que necesita el renderer.
type InvoiceLineForPDF struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// InvoicePDFGenerator renderiza la factura ya ensamblada a bytes PDF.
// Es una función pura sobre sus argumentos: no muta estado ni tiene
// invariantes propios.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		client *entity.Client,
		lines []InvoiceLineForPDF,
	) ([]byte, error)
}
