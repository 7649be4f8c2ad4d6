package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
// El motor es agnóstico al principal: este handler resuelve el alcance del
// token y lo aplica antes o al consultar.
type InvoiceHandler struct {
	uc    *billing.InvoiceUseCase
	pdfUC *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC}
}

// Create crea una factura y descuenta stock.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// List lista facturas: todas para admin, solo las del propio cliente para
// un usuario acotado.
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	scope, ok := ScopedClientID(c)
	if !ok {
		return forbidden(c)
	}
	if scope != "" {
		invoices, err := h.uc.ListByClient(c.Context(), scope)
		if err != nil {
			return mapBillingError(c, err)
		}
		return c.JSON(invoices)
	}
	invoices, err := h.uc.List(c.Context())
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(invoices)
}

// GetByID obtiene una factura con sus líneas. Un usuario no-admin solo puede
// leer facturas de su propio cliente.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	scope, ok := ScopedClientID(c)
	if !ok {
		return forbidden(c)
	}
	invoice, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapBillingError(c, err)
	}
	if scope != "" && invoice.ClientID != scope {
		return forbidden(c)
	}
	return c.JSON(invoice)
}

// GetPDF descarga la representación PDF, con el mismo alcance que GetByID.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) GetPDF(c *fiber.Ctx) error {
	scope, ok := ScopedClientID(c)
	if !ok {
		return forbidden(c)
	}
	pdfBytes, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), scope, c.Params("id"))
	if err != nil {
		return mapBillingError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+filename)
	return c.Send(pdfBytes)
}

// Update actualización parcial (cliente, fecha, estado). Las líneas no son
// modificables por esta ruta.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(invoice)
}

// Delete elimina la factura y sus líneas. No repone stock.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapBillingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
}

// mapBillingError traduce errores de dominio a respuestas HTTP.
func mapBillingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
