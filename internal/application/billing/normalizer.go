package billing

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// Draft es el borrador canónico de factura, con cliente y productos ya
// resueltos contra el registro local. Es el único insumo del orquestador,
// independiente del formato con el que llegó la petición.
type Draft struct {
	NumberingRangeID  int
	ReferenceCode     string
	Observation       string
	PaymentForm       string
	PaymentDueDate    string
	PaymentMethodCode string
	BillingPeriod     entity.BillingPeriod
	Customer          *entity.Customer
	Items             []DraftItem
}

// DraftItem línea del borrador con el producto resuelto.
type DraftItem struct {
	Product          *entity.Product
	Quantity         decimal.Decimal
	DiscountRate     decimal.Decimal
	WithholdingTaxes []entity.WithholdingTax
}

// Normalizer transforma cualquiera de los dos formatos de entrada en un Draft.
type Normalizer struct {
	registry  *Registry
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

// NewNormalizer construye el normalizador.
func NewNormalizer(registry *Registry, customers repository.CustomerRepository, products repository.ProductRepository) *Normalizer {
	return &Normalizer{registry: registry, customers: customers, products: products}
}

// Normalize valida los campos obligatorios y resuelve cliente y productos
// según el formato de la petición. La resolución de productos por línea se
// despacha concurrentemente y se espera en conjunto; el orden de las líneas
// del resultado es el orden de llegada, sin importar cuál terminó primero.
func (n *Normalizer) Normalize(ctx context.Context, req dto.InvoiceRequest) (*Draft, error) {
	switch req.Shape {
	case dto.ShapeExternal:
		return n.normalizeExternal(ctx, req.External)
	case dto.ShapeLocal:
		return n.normalizeLocal(ctx, req.Local)
	default:
		return nil, fmt.Errorf("%w: cuerpo de factura no reconocido", domain.ErrInvalidInput)
	}
}

func (n *Normalizer) normalizeExternal(ctx context.Context, req *dto.ExternalInvoiceRequest) (*Draft, error) {
	if err := validateCore(req.NumberingRangeID, req.ReferenceCode, req.PaymentForm, req.PaymentDueDate, len(req.Items)); err != nil {
		return nil, err
	}

	customer, err := n.registry.FindOrCreateCustomer(ctx, CustomerInput{
		Identification:           req.Customer.Identification,
		DV:                       req.Customer.DV,
		Company:                  req.Customer.Company,
		TradeName:                req.Customer.TradeName,
		Names:                    req.Customer.Names,
		Address:                  req.Customer.Address,
		Email:                    req.Customer.Email,
		Phone:                    req.Customer.Phone,
		LegalOrganizationID:      req.Customer.LegalOrganizationID,
		TributeID:                req.Customer.TributeID,
		IdentificationDocumentID: req.Customer.IdentificationDocumentID,
		MunicipalityID:           req.Customer.MunicipalityID,
	})
	if err != nil {
		return nil, err
	}

	items, err := resolveItems(req.Items, func(item dto.ExternalItemPayload) (DraftItem, error) {
		product, err := n.registry.FindOrCreateProduct(ctx, ProductInput{
			CodeReference:  item.CodeReference,
			Name:           item.Name,
			Price:          item.Price,
			TaxRate:        item.TaxRate,
			UnitMeasureID:  item.UnitMeasureID,
			StandardCodeID: item.StandardCodeID,
			IsExcluded:     item.IsExcluded == 1,
			TributeID:      item.TributeID,
		})
		if err != nil {
			return DraftItem{}, err
		}
		taxes := make([]entity.WithholdingTax, 0, len(item.WithholdingTaxes))
		for _, t := range item.WithholdingTaxes {
			taxes = append(taxes, entity.WithholdingTax{Code: t.Code, Rate: t.WithholdingTaxRate})
		}
		return DraftItem{
			Product:          product,
			Quantity:         item.Quantity,
			DiscountRate:     item.DiscountRate,
			WithholdingTaxes: taxes,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return &Draft{
		NumberingRangeID:  req.NumberingRangeID,
		ReferenceCode:     req.ReferenceCode,
		Observation:       req.Observation,
		PaymentForm:       req.PaymentForm,
		PaymentDueDate:    req.PaymentDueDate,
		PaymentMethodCode: req.PaymentMethodCode,
		BillingPeriod: entity.BillingPeriod{
			StartDate: req.BillingPeriod.StartDate,
			StartTime: req.BillingPeriod.StartTime,
			EndDate:   req.BillingPeriod.EndDate,
			EndTime:   req.BillingPeriod.EndTime,
		},
		Customer: customer,
		Items:    items,
	}, nil
}

func (n *Normalizer) normalizeLocal(ctx context.Context, req *dto.LocalInvoiceRequest) (*Draft, error) {
	if err := validateCore(req.NumberingRangeID, req.ReferenceCode, req.PaymentForm, req.PaymentDueDate, len(req.Items)); err != nil {
		return nil, err
	}
	if req.Customer == "" {
		return nil, fmt.Errorf("%w: customer es requerido", domain.ErrInvalidInput)
	}

	customer, err := n.customers.GetByID(ctx, req.Customer)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	items, err := resolveItems(req.Items, func(item dto.LocalItemPayload) (DraftItem, error) {
		product, err := n.products.GetByID(ctx, item.Product)
		if err != nil {
			return DraftItem{}, fmt.Errorf("buscar producto: %w", err)
		}
		if product == nil {
			return DraftItem{}, &domain.ReferenceNotFoundError{Kind: "producto", ID: item.Product}
		}
		taxes := make([]entity.WithholdingTax, 0, len(item.WithholdingTaxes))
		for _, t := range item.WithholdingTaxes {
			taxes = append(taxes, entity.WithholdingTax{Code: t.Code, Rate: t.WithholdingTaxRate})
		}
		return DraftItem{
			Product:          product,
			Quantity:         item.Quantity,
			DiscountRate:     item.DiscountRate,
			WithholdingTaxes: taxes,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return &Draft{
		NumberingRangeID:  req.NumberingRangeID,
		ReferenceCode:     req.ReferenceCode,
		Observation:       req.Observation,
		PaymentForm:       req.PaymentForm,
		PaymentDueDate:    req.PaymentDueDate,
		PaymentMethodCode: req.PaymentMethodCode,
		BillingPeriod: entity.BillingPeriod{
			StartDate: req.BillingPeriod.StartDate,
			StartTime: req.BillingPeriod.StartTime,
			EndDate:   req.BillingPeriod.EndDate,
			EndTime:   req.BillingPeriod.EndTime,
		},
		Customer: customer,
		Items:    items,
	}, nil
}

// resolveItems resuelve cada línea en su propia goroutine y espera a todas.
// El slice de salida conserva el índice de entrada. Si varias líneas fallan se
// reporta el error de la primera en orden de llegada.
func resolveItems[T any](items []T, resolve func(T) (DraftItem, error)) ([]DraftItem, error) {
	results := make([]DraftItem, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			results[i], errs[i] = resolve(item)
		}(i, item)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// validateCore valida los campos obligatorios comunes a ambos formatos.
func validateCore(numberingRangeID int, referenceCode, paymentForm, paymentDueDate string, itemCount int) error {
	switch {
	case numberingRangeID == 0:
		return fmt.Errorf("%w: numbering_range_id es requerido", domain.ErrInvalidInput)
	case referenceCode == "":
		return fmt.Errorf("%w: reference_code es requerido", domain.ErrInvalidInput)
	case paymentForm == "":
		return fmt.Errorf("%w: payment_form es requerido", domain.ErrInvalidInput)
	case paymentDueDate == "":
		return fmt.Errorf("%w: payment_due_date es requerido", domain.ErrInvalidInput)
	case itemCount == 0:
		return fmt.Errorf("%w: la factura debe tener al menos un item", domain.ErrInvalidInput)
	}
	return nil
}
