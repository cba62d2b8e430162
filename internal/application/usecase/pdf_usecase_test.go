package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/usecase"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos
// ──────────────────────────────────────────────────────────────────────────────

type stubInvoices struct {
	invoice *entity.Invoice
	items   []*entity.InvoiceItem
}

func (s stubInvoices) Create(context.Context, *entity.Invoice, []*entity.InvoiceItem) error {
	return nil
}

func (s stubInvoices) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	if s.invoice != nil && s.invoice.ID == id {
		return s.invoice, nil
	}
	return nil, nil
}

func (s stubInvoices) GetItemsByInvoiceID(context.Context, string) ([]*entity.InvoiceItem, error) {
	return s.items, nil
}

func (s stubInvoices) List(context.Context, int, int) ([]*entity.Invoice, error) { return nil, nil }

func (s stubInvoices) AttachValidation(context.Context, string, json.RawMessage) error { return nil }

type stubCustomers struct{ customer *entity.Customer }

func (s stubCustomers) Create(context.Context, *entity.Customer) error { return nil }
func (s stubCustomers) GetByID(context.Context, string) (*entity.Customer, error) {
	return s.customer, nil
}
func (s stubCustomers) GetByIdentification(context.Context, string) (*entity.Customer, error) {
	return nil, nil
}
func (s stubCustomers) GetByIdentificationOrEmail(context.Context, string, string) (*entity.Customer, error) {
	return nil, nil
}
func (s stubCustomers) List(context.Context, int, int) ([]*entity.Customer, error) {
	return nil, nil
}

type stubProducts struct{ product *entity.Product }

func (s stubProducts) Create(context.Context, *entity.Product) error { return nil }
func (s stubProducts) GetByID(context.Context, string) (*entity.Product, error) {
	return s.product, nil
}
func (s stubProducts) GetByCodeReference(context.Context, string) (*entity.Product, error) {
	return nil, nil
}
func (s stubProducts) List(context.Context, int, int) ([]*entity.Product, error) { return nil, nil }
func (s stubProducts) Update(context.Context, *entity.Product) error             { return nil }

type stubGenerator struct {
	gotLines []usecase.InvoiceLineForPDF
}

func (g *stubGenerator) GenerateInvoicePDF(_ context.Context, _ *entity.Invoice, _ *entity.Customer, lines []usecase.InvoiceLineForPDF) ([]byte, error) {
	g.gotLines = lines
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func validatedInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:            "inv-1",
		ReferenceCode: "FAC-100",
		Status:        entity.StatusValidated,
		CustomerID:    "c-1",
		FactusData:    json.RawMessage(`{"invoice_id":"5523","cufe":"abc","qr":"datos"}`),
	}
}

func TestDownloadInvoicePDF_FacturaValidada(t *testing.T) {
	generator := &stubGenerator{}
	uc := usecase.NewPDFUseCase(
		stubInvoices{
			invoice: validatedInvoice(),
			items: []*entity.InvoiceItem{
				{ID: "it-1", ProductID: "p-1", Quantity: decimal.NewFromInt(2), DiscountRate: decimal.NewFromInt(10)},
			},
		},
		stubCustomers{customer: &entity.Customer{ID: "c-1", Names: "Acme SAS", Identification: "901234567"}},
		stubProducts{product: &entity.Product{ID: "p-1", Name: "Consultoría", Price: decimal.NewFromInt(1000), TaxRate: decimal.NewFromInt(19)}},
		generator,
	)

	pdfBytes, filename, err := uc.DownloadInvoicePDF(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "factura_FAC-100.pdf", filename)
	assert.NotEmpty(t, pdfBytes)

	require.Len(t, generator.gotLines, 1)
	line := generator.gotLines[0]
	assert.Equal(t, "Consultoría", line.ProductName)
	// 2 * 1000 con 10% de descuento
	assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(1800)), "subtotal: %s", line.Subtotal)
}

func TestDownloadInvoicePDF_PendingSeRechaza(t *testing.T) {
	pending := validatedInvoice()
	pending.Status = entity.StatusPending
	pending.FactusData = nil

	uc := usecase.NewPDFUseCase(stubInvoices{invoice: pending}, stubCustomers{}, stubProducts{}, &stubGenerator{})

	_, _, err := uc.DownloadInvoicePDF(context.Background(), "inv-1")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "pending", "el error debe indicar el estado actual")
}

func TestDownloadInvoicePDF_ClienteAusenteEsNotFound(t *testing.T) {
	uc := usecase.NewPDFUseCase(
		stubInvoices{invoice: validatedInvoice()},
		stubCustomers{}, // sin cliente c-1
		stubProducts{},
		&stubGenerator{},
	)

	_, _, err := uc.DownloadInvoicePDF(context.Background(), "inv-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "c-1")
}

func TestDownloadInvoicePDF_NoExiste(t *testing.T) {
	uc := usecase.NewPDFUseCase(stubInvoices{}, stubCustomers{}, stubProducts{}, &stubGenerator{})

	_, _, err := uc.DownloadInvoicePDF(context.Background(), "fantasma")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
