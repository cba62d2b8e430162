package factus

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// BillPayload es el cuerpo que espera Factus en /v1/bills y /v1/bills/validate
// (convención snake_case del servicio).
type BillPayload struct {
	ReferenceCode     string               `json:"reference_code"`
	Observation       string               `json:"observation"`
	PaymentForm       string               `json:"payment_form"`
	PaymentDueDate    string               `json:"payment_due_date"`
	PaymentMethodCode string               `json:"payment_method_code"`
	BillingPeriod     BillingPeriodPayload `json:"billing_period"`
	Customer          CustomerPayload      `json:"customer"`
	Items             []ItemPayload        `json:"items"`
}

// BillingPeriodPayload periodo facturado en el formato de Factus.
type BillingPeriodPayload struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
}

// CustomerPayload cliente en el formato de Factus.
type CustomerPayload struct {
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

// ItemPayload línea de factura en el formato de Factus. TaxRate viaja como
// texto con dos decimales ("19.00") e IsExcluded como 0/1.
type ItemPayload struct {
	CodeReference    string                  `json:"code_reference"`
	Name             string                  `json:"name"`
	Quantity         decimal.Decimal         `json:"quantity"`
	DiscountRate     decimal.Decimal         `json:"discount_rate"`
	Price            decimal.Decimal         `json:"price"`
	TaxRate          string                  `json:"tax_rate"`
	UnitMeasureID    int                     `json:"unit_measure_id"`
	StandardCodeID   int                     `json:"standard_code_id"`
	IsExcluded       int                     `json:"is_excluded"`
	TributeID        int                     `json:"tribute_id"`
	WithholdingTaxes []WithholdingTaxPayload `json:"withholding_taxes"`
}

// WithholdingTaxPayload retención por línea; la tasa viaja como texto.
type WithholdingTaxPayload struct {
	Code               string `json:"code"`
	WithholdingTaxRate string `json:"withholding_tax_rate"`
}

// CreateResult resultado de /v1/bills.
type CreateResult struct {
	InvoiceID string // identificador asignado por Factus
	URL       string // URL de consulta construida sobre el invoice_id
}

// ValidateResult resultado de /v1/bills/validate. FactusData es el objeto bill
// devuelto por el servicio con invoice_id incorporado, listo para persistir
// verbatim en la factura local.
type ValidateResult struct {
	InvoiceID  string
	FactusData json.RawMessage
}

// TokenResult resultado de /auth/token (client_credentials).
type TokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
