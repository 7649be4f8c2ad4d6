package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/invoices.
// IssueDate (YYYY-MM-DD) y Status son opcionales: el motor aplica la fecha
// actual y PENDING si vienen vacíos. Lines puede ser vacío.
type CreateInvoiceRequest struct {
	ClientID  string               `json:"client_id"`
	IssueDate string               `json:"issue_date,omitempty"`
	Status    string               `json:"status,omitempty"`
	Lines     []InvoiceLineRequest `json:"lines"`
}

// InvoiceLineRequest línea de factura (producto y cantidad).
// El precio unitario se captura del producto al crear, nunca lo fija el caller.
type InvoiceLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id. Actualización parcial:
// cada campo es un puntero y solo se aplica si viene presente; un campo
// ausente no equivale a un reseteo explícito. Las líneas no son modificables
// por esta operación.
type UpdateInvoiceRequest struct {
	ClientID  *string `json:"client_id,omitempty"`
	IssueDate *string `json:"issue_date,omitempty"` // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`
}

// InvoiceResponse factura con detalle para respuestas.
type InvoiceResponse struct {
	ID         string                `json:"id"`
	ClientID   string                `json:"client_id"`
	ClientName string                `json:"client_name,omitempty"`
	Amount     decimal.Decimal       `json:"amount"`
	IssueDate  string                `json:"issue_date,omitempty"`
	Status     string                `json:"status,omitempty"`
	Lines      []InvoiceLineResponse `json:"lines"`
}

// InvoiceLineResponse línea en la respuesta. No incluye la referencia a la
// factura padre: el ciclo cabecera↔línea se rompe en el wire.
type InvoiceLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
