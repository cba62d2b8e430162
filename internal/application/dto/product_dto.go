package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	CodeReference  string          `json:"code_reference"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	UnitMeasureID  int             `json:"unit_measure_id"`
	StandardCodeID int             `json:"standard_code_id"`
	IsExcluded     bool            `json:"is_excluded"`
	TributeID      int             `json:"tribute_id"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se tocan.
type UpdateProductRequest struct {
	CodeReference  *string          `json:"code_reference,omitempty"`
	Name           *string          `json:"name,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	TaxRate        *decimal.Decimal `json:"tax_rate,omitempty"`
	UnitMeasureID  *int             `json:"unit_measure_id,omitempty"`
	StandardCodeID *int             `json:"standard_code_id,omitempty"`
	IsExcluded     *bool            `json:"is_excluded,omitempty"`
	TributeID      *int             `json:"tribute_id,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID             string          `json:"id"`
	CodeReference  string          `json:"code_reference"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	UnitMeasureID  int             `json:"unit_measure_id"`
	StandardCodeID int             `json:"standard_code_id"`
	IsExcluded     bool            `json:"is_excluded"`
	TributeID      int             `json:"tribute_id"`
}

// ToProductResponse mapea la entidad a su representación de salida.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:             p.ID,
		CodeReference:  p.CodeReference,
		Name:           p.Name,
		Price:          p.Price,
		TaxRate:        p.TaxRate,
		UnitMeasureID:  p.UnitMeasureID,
		StandardCodeID: p.StandardCodeID,
		IsExcluded:     p.IsExcluded,
		TributeID:      p.TributeID,
	}
}
