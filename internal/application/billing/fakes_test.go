package billing_test

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un memStore compartido con repos sobre él y un TxRunner
// que simula rollback restaurando un snapshot del estado previo cuando fn
// retorna error.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products     map[string]*entity.Product
	clients      map[string]*entity.Client
	invoices     map[string]*entity.Invoice
	invoiceOrder []string
	lines        []*entity.InvoiceLine

	// Inyección de fallos por id para probar aislamiento de errores.
	failInvoiceUpdate map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		products:          make(map[string]*entity.Product),
		clients:           make(map[string]*entity.Client),
		invoices:          make(map[string]*entity.Invoice),
		failInvoiceUpdate: make(map[string]error),
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range s.clients {
		c := *v
		cp.clients[k] = &c
	}
	for k, v := range s.invoices {
		i := *v
		cp.invoices[k] = &i
	}
	cp.invoiceOrder = append([]string(nil), s.invoiceOrder...)
	for _, l := range s.lines {
		ln := *l
		cp.lines = append(cp.lines, &ln)
	}
	cp.failInvoiceUpdate = s.failInvoiceUpdate
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.clients = snap.clients
	s.invoices = snap.invoices
	s.invoiceOrder = snap.invoiceOrder
	s.lines = snap.lines
}

// ── ProductRepository ────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return fmt.Errorf("producto %s no existe", p.ID)
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return fmt.Errorf("producto %s no existe", productID)
	}
	p.Stock = stock
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

// ── ClientRepository ─────────────────────────────────────────────────────────

type fakeClientRepo struct{ s *memStore }

func (r *fakeClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.s.clients {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) Delete(id string) error {
	delete(r.s.clients, id)
	return nil
}

// ── InvoiceRepository ────────────────────────────────────────────────────────

type fakeInvoiceRepo struct{ s *memStore }

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	r.s.invoiceOrder = append(r.s.invoiceOrder, inv.ID)
	return nil
}

func (r *fakeInvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	cp := *line
	r.s.lines = append(r.s.lines, &cp)
	return nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	if err, ok := r.s.failInvoiceUpdate[inv.ID]; ok {
		return err
	}
	if _, ok := r.s.invoices[inv.ID]; !ok {
		return fmt.Errorf("factura %s no existe", inv.ID)
	}
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) List() ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(r.s.invoiceOrder))
	for _, id := range r.s.invoiceOrder {
		if inv, ok := r.s.invoices[id]; ok {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListByClientID(clientID string) ([]*entity.Invoice, error) {
	all, _ := r.List()
	var out []*entity.Invoice
	for _, inv := range all {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	var out []*entity.InvoiceLine
	for _, l := range r.s.lines {
		if l.InvoiceID == invoiceID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	delete(r.s.invoices, id)
	kept := r.s.lines[:0]
	for _, l := range r.s.lines {
		if l.InvoiceID != id {
			kept = append(kept, l)
		}
	}
	r.s.lines = kept
	return nil
}

func (r *fakeInvoiceRepo) DeleteByClientID(clientID string) error {
	for id, inv := range r.s.invoices {
		if inv.ClientID == clientID {
			if err := r.Delete(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// fakeTxRunner simula la semántica transaccional: toma un snapshot del
// estado antes de fn y lo restaura si fn falla, de modo que los tests
// verifican la garantía todo-o-nada sin una base de datos real.
type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	snap := t.s.snapshot()
	err := fn(&fakeProductRepo{t.s}, &fakeClientRepo{t.s}, &fakeInvoiceRepo{t.s})
	if err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}
