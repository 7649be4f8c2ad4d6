package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// PDFUseCase genera la representación PDF de una factura.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		generator:   generator,
	}
}

// DownloadInvoicePDF ensambla la factura completa (cliente y producto
// resueltos por línea) y la renderiza. restrictToClientID es el alcance ya
// resuelto por la capa de borde: vacío para admin; si no, la factura debe
// pertenecer a ese cliente o se retorna domain.ErrForbidden.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrForbidden        si la factura es de otro cliente.
//   - domain.ErrRender (wrapped) si falla la generación del documento.
func (uc *PDFUseCase) DownloadInvoicePDF(
	ctx context.Context,
	restrictToClientID, invoiceID string,
) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if restrictToClientID != "" && inv.ClientID != restrictToClientID {
		return nil, "", domain.ErrForbidden
	}

	client, err := uc.clientRepo.GetByID(inv.ClientID)
	if err != nil || client == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", domain.ErrNotFound)
	}

	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	pdfLines := make([]InvoiceLineForPDF, 0, len(lines))
	for _, line := range lines {
		name := line.ProductID
		if p, err := uc.productRepo.GetByID(line.ProductID); err == nil && p != nil {
			name = p.Name
		}
		pdfLines = append(pdfLines, InvoiceLineForPDF{
			ProductName: name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, client, pdfLines)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	return pdfBytes, fmt.Sprintf("invoice_%s.pdf", inv.ID), nil
}
