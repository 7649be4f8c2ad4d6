package repository

import "github.com/jhoicas/facturacion-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock actualiza solo el stock (usado por el motor de facturación).
	UpdateStock(productID string, stock int) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
