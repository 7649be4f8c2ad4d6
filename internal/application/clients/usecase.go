package clients

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos que
// participan del borrado en cascada de un cliente.
type TxRunner interface {
	RunClients(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		invoiceRepo repository.InvoiceRepository,
		userRepo repository.UserRepository,
	) error) error
}

// ClientUseCase operaciones CRUD de clientes.
type ClientUseCase struct {
	txRunner   TxRunner
	clientRepo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(txRunner TxRunner, clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{txRunner: txRunner, clientRepo: clientRepo}
}

// Create da de alta un cliente. Los clientes se crean con independencia de
// sus facturas.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Get obtiene un cliente por ID.
func (uc *ClientUseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.clientRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Delete elimina un cliente y, en la misma transacción, sus facturas (con
// sus líneas) y desvincula la cuenta de usuario que lo referencie.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunClients(ctx, func(
		clientRepo repository.ClientRepository,
		invoiceRepo repository.InvoiceRepository,
		userRepo repository.UserRepository,
	) error {
		if err := invoiceRepo.DeleteByClientID(id); err != nil {
			return err
		}
		user, err := userRepo.FindByClientID(id)
		if err != nil {
			return err
		}
		if user != nil {
			user.ClientID = ""
			user.UpdatedAt = time.Now()
			if err := userRepo.Update(user); err != nil {
				return err
			}
		}
		return clientRepo.Delete(id)
	})
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Address: c.Address,
	}
}
