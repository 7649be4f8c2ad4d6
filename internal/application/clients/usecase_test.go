package clients_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/clients"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el alcance de clientes
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	clients  map[string]*entity.Client
	invoices map[string]*entity.Invoice
	lines    []*entity.InvoiceLine
	users    map[string]*entity.User
}

func newStore() *store {
	return &store{
		clients:  make(map[string]*entity.Client),
		invoices: make(map[string]*entity.Invoice),
		users:    make(map[string]*entity.User),
	}
}

type stubClientRepo struct{ s *store }

func (r *stubClientRepo) Create(c *entity.Client) error {
	r.s.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *stubClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.s.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubClientRepo) Update(c *entity.Client) error {
	r.s.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) Delete(id string) error {
	delete(r.s.clients, id)
	return nil
}

type stubInvoiceRepo struct{ s *store }

func (r *stubInvoiceRepo) Create(inv *entity.Invoice) error {
	r.s.invoices[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	r.s.lines = append(r.s.lines, line)
	return nil
}

func (r *stubInvoiceRepo) Update(inv *entity.Invoice) error {
	r.s.invoices[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return inv, nil
}

func (r *stubInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *stubInvoiceRepo) List() ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (r *stubInvoiceRepo) ListByClientID(clientID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *stubInvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	var out []*entity.InvoiceLine
	for _, l := range r.s.lines {
		if l.InvoiceID == invoiceID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubInvoiceRepo) Delete(id string) error {
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

func (r *stubInvoiceRepo) DeleteByClientID(clientID string) error {
	for id, inv := range r.s.invoices {
		if inv.ClientID == clientID {
			if err := r.Delete(id); err != nil {
				return err
			}
		}
	}
	return nil
}

type stubUserRepo struct{ s *store }

func (r *stubUserRepo) Create(u *entity.User) error {
	r.s.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByClientID(clientID string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.ClientID == clientID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) Update(u *entity.User) error {
	r.s.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) Delete(id string) error {
	delete(r.s.users, id)
	return nil
}

type stubTxRunner struct{ s *store }

func (t *stubTxRunner) RunClients(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
) error) error {
	return fn(&stubClientRepo{t.s}, &stubInvoiceRepo{t.s}, &stubUserRepo{t.s})
}

func newFixture() (*store, *clients.ClientUseCase) {
	s := newStore()
	uc := clients.NewClientUseCase(&stubTxRunner{s}, &stubClientRepo{s})
	return s, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ClienteValido(t *testing.T) {
	s, uc := newFixture()

	resp, err := uc.Create(context.Background(), dto.CreateClientRequest{
		Name:  "Acme",
		Email: "ventas@acme.example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Acme", resp.Name)
	assert.Contains(t, s.clients, resp.ID)
}

func TestCreate_SinNombre_RetornaInvalidInput(t *testing.T) {
	_, uc := newFixture()
	_, err := uc.Create(context.Background(), dto.CreateClientRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_ClienteInexistente_RetornaNotFound(t *testing.T) {
	_, uc := newFixture()
	_, err := uc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_CascadaFacturasYDesvinculaUsuario(t *testing.T) {
	s, uc := newFixture()

	clientID := uuid.NewString()
	s.clients[clientID] = &entity.Client{ID: clientID, Name: "Acme"}

	// Dos facturas del cliente, cada una con una línea, y una de otro cliente.
	for i := 0; i < 2; i++ {
		invID := uuid.NewString()
		s.invoices[invID] = &entity.Invoice{ID: invID, ClientID: clientID}
		s.lines = append(s.lines, &entity.InvoiceLine{ID: uuid.NewString(), InvoiceID: invID})
	}
	otherInv := uuid.NewString()
	s.invoices[otherInv] = &entity.Invoice{ID: otherInv, ClientID: uuid.NewString()}

	userID := uuid.NewString()
	s.users[userID] = &entity.User{ID: userID, Username: "acme-user", Role: entity.RoleUser, ClientID: clientID}

	require.NoError(t, uc.Delete(context.Background(), clientID))

	assert.NotContains(t, s.clients, clientID, "el cliente debe desaparecer")
	assert.Len(t, s.invoices, 1, "solo sobrevive la factura del otro cliente")
	assert.Contains(t, s.invoices, otherInv)
	assert.Empty(t, s.lines, "las líneas mueren con sus facturas")
	assert.Empty(t, s.users[userID].ClientID,
		"la cuenta de usuario sobrevive pero queda desvinculada")
}

func TestDelete_ClienteSinFacturasNiUsuario_NoFalla(t *testing.T) {
	s, uc := newFixture()
	clientID := uuid.NewString()
	s.clients[clientID] = &entity.Client{ID: clientID, Name: "Solo"}

	require.NoError(t, uc.Delete(context.Background(), clientID))
	assert.Empty(t, s.clients)
}
