package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/application/usecase"
)

// InvoiceHandler maneja las peticiones HTTP de facturación. Acepta los dos
// formatos de entrada (externo snake_case y local camelCase); la distinción la
// hace el propio body al deserializar.
type InvoiceHandler struct {
	normalizer   *billing.Normalizer
	orchestrator *billing.Orchestrator
	query        *usecase.InvoiceQuery
	pdf          *usecase.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(normalizer *billing.Normalizer, orchestrator *billing.Orchestrator, query *usecase.InvoiceQuery, pdf *usecase.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{normalizer: normalizer, orchestrator: orchestrator, query: query, pdf: pdf}
}

// CreateLocal guarda la factura en pending sin contactar a Factus.
// POST /api/invoices/local
func (h *InvoiceHandler) CreateLocal(c *fiber.Ctx) error {
	req, ok := parseInvoiceBody(c)
	if !ok {
		return nil
	}
	draft, err := h.normalizer.Normalize(c.Context(), *req)
	if err != nil {
		return respondError(c, err)
	}
	invoice, _, err := h.orchestrator.CreateLocal(c.Context(), draft)
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.query.GetByID(c.Context(), invoice.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Message: "factura guardada localmente", Data: resp})
}

// Validate registra la factura ante Factus sin persistirla localmente.
// POST /api/invoices/validate
func (h *InvoiceHandler) Validate(c *fiber.Ctx) error {
	req, ok := parseInvoiceBody(c)
	if !ok {
		return nil
	}
	draft, err := h.normalizer.Normalize(c.Context(), *req)
	if err != nil {
		return respondError(c, err)
	}
	outcome, err := h.orchestrator.ValidateRemote(c.Context(), draft, c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ValidateInvoiceResponse{
		Message:   "factura registrada en factus",
		InvoiceID: outcome.InvoiceID,
		FactusURL: outcome.FactusURL,
	})
}

// CreateAndValidate persiste y luego valida ante Factus en una sola llamada.
// Si Factus falla la factura queda guardada en pending y se reporta el error.
// POST /api/invoices/create-and-validate
func (h *InvoiceHandler) CreateAndValidate(c *fiber.Ctx) error {
	req, ok := parseInvoiceBody(c)
	if !ok {
		return nil
	}
	draft, err := h.normalizer.Normalize(c.Context(), *req)
	if err != nil {
		return respondError(c, err)
	}
	invoice, _, err := h.orchestrator.CreateAndValidate(c.Context(), draft, c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.query.GetByID(c.Context(), invoice.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Message: "factura creada y validada", Data: resp})
}

// List devuelve una página de facturas.
// GET /api/invoices?limit=20&offset=0
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.query.List(c.Context(), page)
	if err != nil {
		return respondNotFoundAware(c, err)
	}
	return c.JSON(dto.DataResponse{Message: "ok", Data: list})
}

// GetByID devuelve una factura con cliente y líneas resueltas.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.query.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondNotFoundAware(c, err)
	}
	return c.JSON(dto.DataResponse{Message: "ok", Data: invoice})
}

// DownloadPDF descarga la representación gráfica de una factura validada.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondNotFoundAware(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// parseInvoiceBody deserializa el cuerpo en la unión de formatos. Devuelve
// false si el body no es JSON válido (la respuesta ya fue escrita).
func parseInvoiceBody(c *fiber.Ctx) (*dto.InvoiceRequest, bool) {
	var req dto.InvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return nil, false
	}
	return &req, true
}
