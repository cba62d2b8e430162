package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// InvoiceResponse factura canónica con cliente y productos resueltos.
type InvoiceResponse struct {
	ID                string                `json:"id"`
	NumberingRangeID  int                   `json:"numberingRangeId"`
	ReferenceCode     string                `json:"referenceCode"`
	Observation       string                `json:"observation"`
	PaymentForm       string                `json:"paymentForm"`
	PaymentDueDate    string                `json:"paymentDueDate"`
	PaymentMethodCode string                `json:"paymentMethodCode"`
	BillingPeriod     LocalBillingPeriod    `json:"billingPeriod"`
	Status            string                `json:"status"`
	Customer          *CustomerResponse     `json:"customer"`
	Items             []InvoiceItemResponse `json:"items"`
	FactusData        json.RawMessage       `json:"factusData,omitempty"`
}

// InvoiceItemResponse línea de factura con el producto resuelto.
type InvoiceItemResponse struct {
	Product          *ProductResponse          `json:"product"`
	Quantity         decimal.Decimal           `json:"quantity"`
	DiscountRate     decimal.Decimal           `json:"discountRate"`
	WithholdingTaxes []LocalWithholdingPayload `json:"withholdingTaxes"`
}

// ValidateInvoiceResponse respuesta de POST /api/invoices/validate
// (registro en Factus sin persistencia local).
type ValidateInvoiceResponse struct {
	Message   string `json:"message"`
	InvoiceID string `json:"invoice_id"`
	FactusURL string `json:"factus_url"`
}

// TokenResponse respuesta de POST /api/factus/token.
type TokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}
