package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// InvoiceLineForPDF línea enriquecida con los datos del producto, lista para
// pintar en la representación gráfica.
type InvoiceLineForPDF struct {
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal
}

// InvoicePDFGenerator puerto de salida hacia el motor de PDF.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer, lines []InvoiceLineForPDF) ([]byte, error)
}

// PDFUseCase genera la representación gráfica (PDF) de una factura validada.
// Solo se permite para facturas validated: antes de eso no hay CUFE ni QR.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoices:  invoices,
		customers: customers,
		products:  products,
		generator: generator,
	}
}

// DownloadInvoicePDF recupera la factura, verifica que está validated y genera
// el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrInvalidInput     si la factura sigue pending (sin FactusData).
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	if inv.Status != entity.StatusValidated || inv.FactusInfo() == nil {
		return nil, "", fmt.Errorf("%w: la factura está en estado %s, valídela con factus antes de descargar el PDF",
			domain.ErrInvalidInput, inv.Status)
	}

	customer, err := uc.customers.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", fmt.Errorf("%w: cliente %s de la factura", domain.ErrNotFound, inv.CustomerID)
	}

	items, err := uc.invoices.GetItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}

	hundred := decimal.NewFromInt(100)
	lines := make([]InvoiceLineForPDF, 0, len(items))
	for _, item := range items {
		name := "Producto " + item.ProductID // fallback
		price := decimal.Zero
		taxRate := decimal.Zero
		if product, pErr := uc.products.GetByID(ctx, item.ProductID); pErr == nil && product != nil {
			name = product.Name
			price = product.Price
			taxRate = product.TaxRate
		}
		gross := item.Quantity.Mul(price)
		subtotal := gross.Sub(gross.Mul(item.DiscountRate).Div(hundred))
		lines = append(lines, InvoiceLineForPDF{
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   price,
			TaxRate:     taxRate,
			Subtotal:    subtotal,
		})
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, customer, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_%s.pdf", inv.ReferenceCode)
	return pdfBytes, filename, nil
}
