package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. El campo es un string abierto en persistencia,
// pero el motor solo produce estos tres valores.
const (
	StatusPending   = "PENDING"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

// ValidStatus indica si s es uno de los estados que el motor acepta.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusPaid || s == StatusCancelled
}

// Invoice representa la cabecera de una factura.
//
// Amount es la suma de precio unitario × cantidad capturada al momento de
// agregar cada línea; no se recalcula con el precio vigente del producto.
// IssueDate y Status pueden venir vacíos en registros cargados por rutas
// antiguas o importaciones externas; el reconciliador los repara.
type Invoice struct {
	ID        string
	ClientID  string // nunca vacío una vez persistida
	Amount    decimal.Decimal
	IssueDate *time.Time // nil = ausente, pendiente de reparación
	Status    string     // "" = ausente, pendiente de reparación
	CreatedAt time.Time
	UpdatedAt time.Time
}
