package repository

import "github.com/jhoicas/facturacion-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Delete y DeleteByClientID eliminan en cascada las líneas de cada factura.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	// Update reescribe client_id, amount, issue_date, status y updated_at.
	Update(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate obtiene la factura bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Invoice, error)
	List() ([]*entity.Invoice, error)
	ListByClientID(clientID string) ([]*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error)
	// Delete es idempotente: borrar un id inexistente no es error.
	Delete(id string) error
	DeleteByClientID(clientID string) error
}
