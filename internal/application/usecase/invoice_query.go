package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// InvoiceQuery arma la vista canónica de una factura: cabecera más cliente y
// productos resueltos por referencia.
type InvoiceQuery struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

// NewInvoiceQuery construye el caso de uso de consulta.
func NewInvoiceQuery(invoices repository.InvoiceRepository, customers repository.CustomerRepository, products repository.ProductRepository) *InvoiceQuery {
	return &InvoiceQuery{invoices: invoices, customers: customers, products: products}
}

// GetByID devuelve una factura con cliente y líneas resueltas.
func (q *InvoiceQuery) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := q.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar factura: %w", err)
	}
	if invoice == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	return q.resolve(ctx, invoice)
}

// List devuelve una página de facturas, cada una con cliente y líneas.
func (q *InvoiceQuery) List(ctx context.Context, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	invoices, err := q.invoices.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	out := make([]*dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		resolved, err := q.resolve(ctx, inv)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

func (q *InvoiceQuery) resolve(ctx context.Context, invoice *entity.Invoice) (*dto.InvoiceResponse, error) {
	customer, err := q.customers.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente de la factura: %w", err)
	}

	items, err := q.invoices.GetItemsByInvoiceID(ctx, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("buscar líneas de la factura: %w", err)
	}

	lines := make([]dto.InvoiceItemResponse, len(items))
	for i, item := range items {
		product, err := q.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("buscar producto de la línea: %w", err)
		}
		taxes := make([]dto.LocalWithholdingPayload, len(item.WithholdingTaxes))
		for j, t := range item.WithholdingTaxes {
			taxes[j] = dto.LocalWithholdingPayload{Code: t.Code, WithholdingTaxRate: t.Rate}
		}
		lines[i] = dto.InvoiceItemResponse{
			Product:          dto.ToProductResponse(product),
			Quantity:         item.Quantity,
			DiscountRate:     item.DiscountRate,
			WithholdingTaxes: taxes,
		}
	}

	return &dto.InvoiceResponse{
		ID:                invoice.ID,
		NumberingRangeID:  invoice.NumberingRangeID,
		ReferenceCode:     invoice.ReferenceCode,
		Observation:       invoice.Observation,
		PaymentForm:       invoice.PaymentForm,
		PaymentDueDate:    invoice.PaymentDueDate,
		PaymentMethodCode: invoice.PaymentMethodCode,
		BillingPeriod: dto.LocalBillingPeriod{
			StartDate: invoice.BillingPeriod.StartDate,
			StartTime: invoice.BillingPeriod.StartTime,
			EndDate:   invoice.BillingPeriod.EndDate,
			EndTime:   invoice.BillingPeriod.EndTime,
		},
		Status:     invoice.Status,
		Customer:   dto.ToCustomerResponse(customer),
		Items:      lines,
		FactusData: invoice.FactusData,
	}, nil
}
