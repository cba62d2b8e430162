package repository

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create guarda cabecera y líneas de forma atómica.
	Create(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	// AttachValidation guarda factusData y pasa la factura a validated en un solo
	// update condicionado al ID recién creado. Devuelve ErrNotFound si no hay fila.
	AttachValidation(ctx context.Context, id string, factusData json.RawMessage) error
}
