package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Formatos de entrada aceptados para una factura.
type InvoiceShape int

const (
	ShapeUnknown InvoiceShape = iota
	// ShapeExternal: cuerpo totalmente desnormalizado en snake_case, con los
	// datos del cliente y de cada producto embebidos.
	ShapeExternal
	// ShapeLocal: cuerpo en la convención local (camelCase) referenciando
	// cliente y productos por ID ya conocidos.
	ShapeLocal
)

// InvoiceRequest es la unión etiquetada de los dos formatos de entrada.
// El discriminante se decide una sola vez, al deserializar: si customer es un
// objeto con identification, la petición es externa; en cualquier otro caso
// es local.
type InvoiceRequest struct {
	Shape    InvoiceShape
	External *ExternalInvoiceRequest
	Local    *LocalInvoiceRequest
}

// UnmarshalJSON decide el formato inspeccionando el miembro customer.
func (r *InvoiceRequest) UnmarshalJSON(data []byte) error {
	var probe struct {
		Customer json.RawMessage `json:"customer"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if isExternalCustomer(probe.Customer) {
		var ext ExternalInvoiceRequest
		if err := json.Unmarshal(data, &ext); err != nil {
			return err
		}
		r.Shape = ShapeExternal
		r.External = &ext
		return nil
	}

	var loc LocalInvoiceRequest
	if err := json.Unmarshal(data, &loc); err != nil {
		return err
	}
	r.Shape = ShapeLocal
	r.Local = &loc
	return nil
}

func isExternalCustomer(raw json.RawMessage) bool {
	var obj struct {
		Identification string `json:"identification"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	return obj.Identification != ""
}

// ── Formato externo (snake_case, datos embebidos) ─────────────────────────────

// ExternalInvoiceRequest cuerpo desnormalizado tal como lo envía un integrador.
type ExternalInvoiceRequest struct {
	NumberingRangeID  int                       `json:"numbering_range_id"`
	ReferenceCode     string                    `json:"reference_code"`
	Observation       string                    `json:"observation"`
	PaymentForm       string                    `json:"payment_form"`
	PaymentDueDate    string                    `json:"payment_due_date"`
	PaymentMethodCode string                    `json:"payment_method_code"`
	BillingPeriod     ExternalBillingPeriod     `json:"billing_period"`
	Customer          ExternalCustomerPayload   `json:"customer"`
	Items             []ExternalItemPayload     `json:"items"`
}

// ExternalBillingPeriod periodo facturado en snake_case.
type ExternalBillingPeriod struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
}

// ExternalCustomerPayload datos completos del cliente embebidos en la petición.
type ExternalCustomerPayload struct {
	Identification           string `json:"identification"`
	DV                       string `json:"dv"`
	Company                  string `json:"company"`
	TradeName                string `json:"trade_name"`
	Names                    string `json:"names"`
	Address                  string `json:"address"`
	Email                    string `json:"email"`
	Phone                    string `json:"phone"`
	LegalOrganizationID      string `json:"legal_organization_id"`
	TributeID                string `json:"tribute_id"`
	IdentificationDocumentID string `json:"identification_document_id"`
	MunicipalityID           string `json:"municipality_id"`
}

// ExternalItemPayload línea con los datos del producto embebidos.
// TaxRate y las tasas de retención aceptan número o texto JSON
// (decimal.Decimal deserializa ambos).
type ExternalItemPayload struct {
	CodeReference    string                       `json:"code_reference"`
	Name             string                       `json:"name"`
	Price            decimal.Decimal              `json:"price"`
	TaxRate          decimal.Decimal              `json:"tax_rate"`
	UnitMeasureID    int                          `json:"unit_measure_id"`
	StandardCodeID   int                          `json:"standard_code_id"`
	IsExcluded       int                          `json:"is_excluded"` // 0/1
	TributeID        int                          `json:"tribute_id"`
	Quantity         decimal.Decimal              `json:"quantity"`
	DiscountRate     decimal.Decimal              `json:"discount_rate"`
	WithholdingTaxes []ExternalWithholdingPayload `json:"withholding_taxes"`
}

// ExternalWithholdingPayload retención en snake_case.
type ExternalWithholdingPayload struct {
	Code               string          `json:"code"`
	WithholdingTaxRate decimal.Decimal `json:"withholding_tax_rate"`
}

// ── Formato local (camelCase, referencias por ID) ─────────────────────────────

// LocalInvoiceRequest cuerpo en la convención canónica, con IDs ya conocidos.
type LocalInvoiceRequest struct {
	NumberingRangeID  int                `json:"numberingRangeId"`
	ReferenceCode     string             `json:"referenceCode"`
	Observation       string             `json:"observation"`
	PaymentForm       string             `json:"paymentForm"`
	PaymentDueDate    string             `json:"paymentDueDate"`
	PaymentMethodCode string             `json:"paymentMethodCode"`
	BillingPeriod     LocalBillingPeriod `json:"billingPeriod"`
	Customer          string             `json:"customer"` // ID del cliente
	Items             []LocalItemPayload `json:"items"`
}

// LocalBillingPeriod periodo facturado en camelCase.
type LocalBillingPeriod struct {
	StartDate string `json:"startDate"`
	StartTime string `json:"startTime"`
	EndDate   string `json:"endDate"`
	EndTime   string `json:"endTime"`
}

// LocalItemPayload línea referenciando el producto por ID.
type LocalItemPayload struct {
	Product          string                    `json:"product"` // ID del producto
	Quantity         decimal.Decimal           `json:"quantity"`
	DiscountRate     decimal.Decimal           `json:"discountRate"`
	WithholdingTaxes []LocalWithholdingPayload `json:"withholdingTaxes"`
}

// LocalWithholdingPayload retención en camelCase.
type LocalWithholdingPayload struct {
	Code               string          `json:"code"`
	WithholdingTaxRate decimal.Decimal `json:"withholdingTaxRate"`
}
