package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
//
// Las líneas viven en invoice_lines con FK ON DELETE CASCADE hacia invoices:
// borrar la cabecera elimina sus líneas en el mismo statement, sin ventana
// para huérfanos.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, client_id, amount, issue_date, status, created_at, updated_at`

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, client_id, amount, issue_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.ClientID, invoice.Amount, invoice.IssueDate,
		nullIfEmpty(invoice.Status), invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de la factura.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// Update reescribe los campos mutables de la cabecera.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET client_id = $2, amount = $3, issue_date = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.ClientID, invoice.Amount, invoice.IssueDate,
		nullIfEmpty(invoice.Status), invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la factura y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción: serializa la mutación del
// usuario contra la del reconciliador sobre la misma factura.
func (r *InvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.get(id, true)
}

func (r *InvoiceRepo) get(id string, forUpdate bool) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var inv entity.Invoice
	var status *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.ClientID, &inv.Amount, &inv.IssueDate, &status,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if status != nil {
		inv.Status = *status
	}
	return &inv, nil
}

// List devuelve todas las facturas (orden de creación).
func (r *InvoiceRepo) List() ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at`
	return r.list(query)
}

// ListByClientID devuelve las facturas de un cliente.
func (r *InvoiceRepo) ListByClientID(clientID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE client_id = $1 ORDER BY created_at`
	return r.list(query, clientID)
}

func (r *InvoiceRepo) list(query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var status *string
		if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.Amount, &inv.IssueDate, &status,
			&inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		if status != nil {
			inv.Status = *status
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// GetLinesByInvoiceID obtiene las líneas de una factura en orden de inserción.
func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, unit_price, subtotal
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLine
	for rows.Next() {
		var line entity.InvoiceLine
		if err := rows.Scan(&line.ID, &line.InvoiceID, &line.ProductID, &line.Quantity,
			&line.UnitPrice, &line.Subtotal); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		list = append(list, &line)
	}
	return list, rows.Err()
}

// Delete elimina la factura; las líneas caen por la cascada de la FK.
// Idempotente: borrar un id inexistente no es error.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// DeleteByClientID elimina todas las facturas de un cliente (cascada de líneas).
func (r *InvoiceRepo) DeleteByClientID(clientID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE client_id = $1`, clientID)
	if err != nil {
		return fmt.Errorf("delete invoices by client: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
