package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con precio y stock disponible.
// Stock solo lo descuenta el motor de facturación al crear una factura;
// no existe reposición automática (el alta/edición de catálogo es manual).
type Product struct {
	ID        string
	Name      string
	Category  string
	Price     decimal.Decimal // precio de venta unitario, nunca negativo
	Stock     int             // unidades disponibles, nunca negativo
	CreatedAt time.Time
	UpdatedAt time.Time
}
