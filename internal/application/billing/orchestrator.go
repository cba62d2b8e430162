package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/factus"
	"github.com/jhoicas/Facturador-api/pkg/logger"
)

// ValidationOutcome resultado del registro de una factura ante Factus.
type ValidationOutcome struct {
	InvoiceID string
	FactusURL string
}

// Orchestrator coordina las tres operaciones sobre una factura ya
// normalizada: persistir local, registrar ante Factus, o ambas.
type Orchestrator struct {
	invoices repository.InvoiceRepository
	gateway  factus.Gateway
	log      *logger.Logger
}

// NewOrchestrator construye el orquestador.
func NewOrchestrator(invoices repository.InvoiceRepository, gateway factus.Gateway, log *logger.Logger) *Orchestrator {
	return &Orchestrator{invoices: invoices, gateway: gateway, log: log}
}

// CreateLocal persiste la factura en estado pending sin contactar a Factus.
func (o *Orchestrator) CreateLocal(ctx context.Context, draft *Draft) (*entity.Invoice, []*entity.InvoiceItem, error) {
	invoice, items := o.materialize(draft)

	if err := o.invoices.Create(ctx, invoice, items); err != nil {
		var dup *domain.DuplicateError
		if errors.As(err, &dup) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	o.log.Info().
		Str("invoice_id", invoice.ID).
		Str("reference_code", invoice.ReferenceCode).
		Int("items", len(items)).
		Msg("factura guardada localmente")
	return invoice, items, nil
}

// ValidateRemote registra la factura ante Factus sin persistirla localmente.
// La credencial se exige antes de tocar la red: sin header "Bearer " no sale
// ninguna petición. Un solo intento, sin reintentos.
func (o *Orchestrator) ValidateRemote(ctx context.Context, draft *Draft, credential string) (*ValidationOutcome, error) {
	if err := checkCredential(credential); err != nil {
		return nil, err
	}

	payload := ToFactusFormat(draft)
	result, err := o.gateway.CreateBill(ctx, &payload, credential)
	if err != nil {
		o.log.Error().Err(err).
			Str("reference_code", draft.ReferenceCode).
			Msg("factus rechazó la factura")
		return nil, err
	}

	o.log.Info().
		Str("reference_code", draft.ReferenceCode).
		Str("factus_invoice_id", result.InvoiceID).
		Msg("factura registrada en factus")
	return &ValidationOutcome{InvoiceID: result.InvoiceID, FactusURL: result.URL}, nil
}

// CreateAndValidate persiste la factura y luego la valida ante Factus,
// adjuntando el resultado a la fila recién creada. El orden importa: primero
// se persiste, de modo que un fallo externo deja la factura en pending y
// recuperable, nunca se revierte la escritura local.
func (o *Orchestrator) CreateAndValidate(ctx context.Context, draft *Draft, credential string) (*entity.Invoice, []*entity.InvoiceItem, error) {
	invoice, items, err := o.CreateLocal(ctx, draft)
	if err != nil {
		return nil, nil, err
	}

	if err := checkCredential(credential); err != nil {
		return nil, nil, err
	}

	payload := ToFactusFormat(draft)
	result, err := o.gateway.ValidateBill(ctx, &payload, credential)
	if err != nil {
		o.log.Error().Err(err).
			Str("invoice_id", invoice.ID).
			Msg("validación con factus falló; la factura queda pending")
		return nil, nil, err
	}

	if err := o.invoices.AttachValidation(ctx, invoice.ID, result.FactusData); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	invoice.Status = entity.StatusValidated
	invoice.FactusData = result.FactusData

	o.log.Info().
		Str("invoice_id", invoice.ID).
		Str("factus_invoice_id", result.InvoiceID).
		Msg("factura validada con factus")
	return invoice, items, nil
}

// materialize asigna identidad y estado inicial al borrador.
func (o *Orchestrator) materialize(draft *Draft) (*entity.Invoice, []*entity.InvoiceItem) {
	now := time.Now().UTC()
	invoice := &entity.Invoice{
		ID:                uuid.NewString(),
		NumberingRangeID:  draft.NumberingRangeID,
		ReferenceCode:     draft.ReferenceCode,
		Observation:       draft.Observation,
		PaymentForm:       draft.PaymentForm,
		PaymentDueDate:    draft.PaymentDueDate,
		PaymentMethodCode: draft.PaymentMethodCode,
		BillingPeriod:     draft.BillingPeriod,
		Status:            entity.StatusPending,
		CustomerID:        draft.Customer.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	items := make([]*entity.InvoiceItem, len(draft.Items))
	for i, line := range draft.Items {
		items[i] = &entity.InvoiceItem{
			ID:               uuid.NewString(),
			InvoiceID:        invoice.ID,
			Position:         i + 1,
			ProductID:        line.Product.ID,
			Quantity:         line.Quantity,
			DiscountRate:     line.DiscountRate,
			WithholdingTaxes: line.WithholdingTaxes,
		}
	}
	return invoice, items
}

// checkCredential exige un header Authorization con esquema Bearer.
func checkCredential(credential string) error {
	if !strings.HasPrefix(credential, "Bearer ") {
		return domain.ErrUnauthorized
	}
	return nil
}
