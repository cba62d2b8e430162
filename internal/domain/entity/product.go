package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un ítem facturable del catálogo.
// CodeReference es la clave natural (única); TaxRate se guarda como número y
// se serializa con dos decimales hacia Factus ("19.00").
type Product struct {
	ID             string
	CodeReference  string
	Name           string
	Price          decimal.Decimal
	TaxRate        decimal.Decimal // IVA Colombia: 0, 5, 19
	UnitMeasureID  int
	StandardCodeID int
	IsExcluded     bool
	TributeID      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
