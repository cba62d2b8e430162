package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una línea de una factura. La factura es dueña
// exclusiva de sus líneas; el producto se comparte por referencia.
type InvoiceItem struct {
	ID               string
	InvoiceID        string
	Position         int // orden de llegada en la petición
	ProductID        string
	Quantity         decimal.Decimal
	DiscountRate     decimal.Decimal
	WithholdingTaxes []WithholdingTax
}

// WithholdingTax es una retención aplicada a una línea (ej: "06" = ReteFuente).
type WithholdingTax struct {
	Code string          `json:"code"`
	Rate decimal.Decimal `json:"withholding_tax_rate"`
}
