package entity

import "github.com/shopspring/decimal"

// InvoiceLine representa una línea de una factura: un producto y su cantidad,
// con el precio unitario capturado al momento de crearla.
//
// Una línea pertenece en exclusiva a su factura: nace y muere con ella y no
// se comparte entre facturas. La entidad solo lleva la referencia al padre
// (InvoiceID); la cabecera nunca incrusta sus líneas, para evitar el ciclo
// padre↔hijo al serializar.
type InvoiceLine struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  int // siempre > 0
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // UnitPrice × Quantity
}
