package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/clients"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// Ensure TxRunner implements billing.TxRunner and clients.TxRunner.
var _ billing.TxRunner = (*TxRunner)(nil)
var _ clients.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de facturación (catálogo,
// clientes, facturas) atados a la tx y hace Commit o Rollback. Es la unidad
// atómica del create de facturas: todas las verificaciones y descuentos de
// stock de todas las líneas viven dentro de esta transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	clientRepo := NewClientRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(productRepo, clientRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunClients inicia una transacción con los repos del borrado en cascada de
// un cliente (clientes, facturas, usuarios).
func (r *TxRunner) RunClients(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	clientRepo := NewClientRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(clientRepo, invoiceRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
