package billing

import (
	"github.com/jhoicas/Facturador-api/internal/infrastructure/factus"
)

// ToFactusFormat convierte un Draft en el cuerpo que espera Factus. Es una
// función pura sobre el borrador: ni consulta ni muta nada, así que el mismo
// Draft produce siempre el mismo payload.
//
// Convenciones del servicio: tax_rate viaja como texto con dos decimales
// ("19.00"), is_excluded como 0/1 y las tasas de retención como texto.
func ToFactusFormat(draft *Draft) factus.BillPayload {
	items := make([]factus.ItemPayload, len(draft.Items))
	for i, item := range draft.Items {
		excluded := 0
		if item.Product.IsExcluded {
			excluded = 1
		}

		taxes := make([]factus.WithholdingTaxPayload, len(item.WithholdingTaxes))
		for j, t := range item.WithholdingTaxes {
			taxes[j] = factus.WithholdingTaxPayload{
				Code:               t.Code,
				WithholdingTaxRate: t.Rate.String(),
			}
		}

		items[i] = factus.ItemPayload{
			CodeReference:    item.Product.CodeReference,
			Name:             item.Product.Name,
			Quantity:         item.Quantity,
			DiscountRate:     item.DiscountRate,
			Price:            item.Product.Price,
			TaxRate:          item.Product.TaxRate.StringFixed(2),
			UnitMeasureID:    item.Product.UnitMeasureID,
			StandardCodeID:   item.Product.StandardCodeID,
			IsExcluded:       excluded,
			TributeID:        item.Product.TributeID,
			WithholdingTaxes: taxes,
		}
	}

	return factus.BillPayload{
		ReferenceCode:     draft.ReferenceCode,
		Observation:       draft.Observation,
		PaymentForm:       draft.PaymentForm,
		PaymentDueDate:    draft.PaymentDueDate,
		PaymentMethodCode: draft.PaymentMethodCode,
		BillingPeriod: factus.BillingPeriodPayload{
			StartDate: draft.BillingPeriod.StartDate,
			StartTime: draft.BillingPeriod.StartTime,
			EndDate:   draft.BillingPeriod.EndDate,
			EndTime:   draft.BillingPeriod.EndTime,
		},
		Customer: factus.CustomerPayload{
			Identification:           draft.Customer.Identification,
			DV:                       draft.Customer.DV,
			Company:                  draft.Customer.Company,
			TradeName:                draft.Customer.TradeName,
			Names:                    draft.Customer.Names,
			Address:                  draft.Customer.Address,
			Email:                    draft.Customer.Email,
			Phone:                    draft.Customer.Phone,
			LegalOrganizationID:      draft.Customer.LegalOrganizationID,
			TributeID:                draft.Customer.TributeID,
			IdentificationDocumentID: draft.Customer.IdentificationDocumentID,
			MunicipalityID:           draft.Customer.MunicipalityID,
		},
		Items: items,
	}
}
