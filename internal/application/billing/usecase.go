package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// Formato de fecha de emisión en requests y respuestas.
const dateLayout = "2006-01-02"

// InvoiceUseCase ejecuta el ciclo de vida de facturas contra el catálogo y
// el libro de facturas: creación atómica con reserva de stock, actualización
// parcial, borrado en cascada y consultas.
type InvoiceUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	invoiceRepo repository.InvoiceRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Create crea la factura y descuenta el stock de cada línea en una sola
// transacción. Si un cliente o producto no existe, o si alguna línea excede
// el stock disponible, la operación completa se revierte: ningún descuento
// parcial sobrevive a un fallo.
//
// El total se acumula con aritmética decimal exacta sobre el precio del
// producto al momento de agregar la línea; no se recalcula después.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.StatusPending
	}
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	issueDate := time.Now()
	if in.IssueDate != "" {
		d, err := time.Parse(dateLayout, in.IssueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		issueDate = d
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		IssueDate: &issueDate,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var lines []*entity.InvoiceLine
	var clientName string
	productNames := make(map[string]string)

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// 1) Resolver el cliente antes de tocar cualquier stock.
		client, err := clientRepo.GetByID(in.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		clientName = client.Name

		// 2) Por cada línea: bloquear la fila del producto, verificar stock,
		// descontar y acumular el total. El bloqueo serializa creaciones
		// concurrentes contra el mismo producto: dos creates no pueden pasar
		// ambos la verificación y sobregirar el stock.
		total := decimal.Zero
		for _, item := range in.Lines {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.Name)
			}
			if err := productRepo.UpdateStock(product.ID, product.Stock-item.Quantity); err != nil {
				return err
			}
			productNames[product.ID] = product.Name

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			lines = append(lines, &entity.InvoiceLine{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Subtotal:  subtotal,
			})
			total = total.Add(subtotal)
		}
		inv.Amount = total

		// 3) Persistir cabecera y líneas como una sola unidad.
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, line := range lines {
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, clientName, lines, productNames), nil
}

// Update aplica una actualización parcial: solo los campos presentes en el
// request (cliente, fecha de emisión, estado) se modifican. Las líneas no son
// modificables por esta operación — limitación de alcance documentada, no un
// comportamiento a inferir. No hay efectos sobre el stock.
//
// Corre en una transacción con bloqueo de fila para que no compita con el
// reconciliador por la misma factura (sin lost updates).
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Status != nil && !entity.ValidStatus(*in.Status) {
		return nil, domain.ErrInvalidInput
	}
	var newDate *time.Time
	if in.IssueDate != nil {
		d, err := time.Parse(dateLayout, *in.IssueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		newDate = &d
	}

	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		clientRepo repository.ClientRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if in.ClientID != nil {
			client, err := clientRepo.GetByID(*in.ClientID)
			if err != nil {
				return err
			}
			if client == nil {
				return domain.ErrNotFound
			}
			inv.ClientID = client.ID
		}
		if newDate != nil {
			inv.IssueDate = newDate
		}
		if in.Status != nil {
			inv.Status = *in.Status
		}
		inv.UpdatedAt = time.Now()
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}
	return uc.assemble(inv)
}

// Delete elimina la factura y todas sus líneas como una unidad (cascada en
// la FK). No repone el stock descontado: la reserva es un compromiso
// permanente. Borrar un id inexistente no es error.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.invoiceRepo.Delete(id)
}

// Get obtiene una factura por ID con sus líneas y los nombres resueltos.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.assemble(inv)
}

// List devuelve todas las cabeceras de factura.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List()
	if err != nil {
		return nil, err
	}
	return uc.assembleAll(invoices)
}

// ListByClient devuelve las facturas de un cliente.
func (uc *InvoiceUseCase) ListByClient(ctx context.Context, clientID string) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.ListByClientID(clientID)
	if err != nil {
		return nil, err
	}
	return uc.assembleAll(invoices)
}

// assemble carga líneas y nombres para la respuesta de una factura.
func (uc *InvoiceUseCase) assemble(inv *entity.Invoice) (*dto.InvoiceResponse, error) {
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	clientName := ""
	if client, err := uc.clientRepo.GetByID(inv.ClientID); err == nil && client != nil {
		clientName = client.Name
	}
	productNames := make(map[string]string)
	for _, line := range lines {
		if _, ok := productNames[line.ProductID]; ok {
			continue
		}
		if p, err := uc.productRepo.GetByID(line.ProductID); err == nil && p != nil {
			productNames[line.ProductID] = p.Name
		}
	}
	return toInvoiceResponse(inv, clientName, lines, productNames), nil
}

func (uc *InvoiceUseCase) assembleAll(invoices []*entity.Invoice) ([]*dto.InvoiceResponse, error) {
	responses := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp, err := uc.assemble(inv)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func toInvoiceResponse(inv *entity.Invoice, clientName string, lines []*entity.InvoiceLine, productNames map[string]string) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:         inv.ID,
		ClientID:   inv.ClientID,
		ClientName: clientName,
		Amount:     inv.Amount,
		Status:     inv.Status,
		Lines:      make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	if inv.IssueDate != nil {
		resp.IssueDate = inv.IssueDate.Format(dateLayout)
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: productNames[line.ProductID],
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	return resp
}
