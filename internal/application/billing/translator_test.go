package billing_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

func sampleDraft() *billing.Draft {
	return &billing.Draft{
		NumberingRangeID:  8,
		ReferenceCode:     "FAC-100",
		Observation:       "venta",
		PaymentForm:       "1",
		PaymentDueDate:    "2026-09-30",
		PaymentMethodCode: "10",
		BillingPeriod: entity.BillingPeriod{
			StartDate: "2026-09-01", StartTime: "00:00:00",
			EndDate: "2026-09-30", EndTime: "23:59:59",
		},
		Customer: &entity.Customer{
			ID: "c-1", Identification: "901234567", DV: "3",
			Names: "Acme SAS", Email: "f@acme.co", TributeID: "21",
		},
		Items: []billing.DraftItem{
			{
				Product: &entity.Product{
					ID: "p-1", CodeReference: "SKU-001", Name: "Consultoría",
					Price: decimal.NewFromInt(250000), TaxRate: decimal.NewFromInt(19),
					UnitMeasureID: 70, StandardCodeID: 1, TributeID: 1,
				},
				Quantity:     decimal.NewFromInt(2),
				DiscountRate: decimal.NewFromInt(10),
				WithholdingTaxes: []entity.WithholdingTax{
					{Code: "06", Rate: decimal.RequireFromString("7.5")},
				},
			},
			{
				Product: &entity.Product{
					ID: "p-2", CodeReference: "SKU-002", Name: "Exento",
					Price: decimal.NewFromInt(1000), TaxRate: decimal.Zero,
					IsExcluded: true,
				},
				Quantity: decimal.NewFromInt(1),
			},
		},
	}
}

func TestToFactusFormat_ConvencionesDelServicio(t *testing.T) {
	payload := billing.ToFactusFormat(sampleDraft())

	require.Len(t, payload.Items, 2)
	assert.Equal(t, "19.00", payload.Items[0].TaxRate, "tax_rate debe viajar como texto con dos decimales")
	assert.Equal(t, "0.00", payload.Items[1].TaxRate)
	assert.Equal(t, 0, payload.Items[0].IsExcluded, "is_excluded debe viajar como 0/1")
	assert.Equal(t, 1, payload.Items[1].IsExcluded)

	require.Len(t, payload.Items[0].WithholdingTaxes, 1)
	assert.Equal(t, "7.5", payload.Items[0].WithholdingTaxes[0].WithholdingTaxRate, "la retención debe viajar como texto")

	assert.Equal(t, "FAC-100", payload.ReferenceCode)
	assert.Equal(t, "901234567", payload.Customer.Identification)
	assert.Equal(t, "2026-09-01", payload.BillingPeriod.StartDate)
}

func TestToFactusFormat_ConservaCantidadesYDescuentos(t *testing.T) {
	payload := billing.ToFactusFormat(sampleDraft())

	assert.True(t, payload.Items[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, payload.Items[0].DiscountRate.Equal(decimal.NewFromInt(10)))
	assert.True(t, payload.Items[0].Price.Equal(decimal.NewFromInt(250000)))
}

// El payload se serializa en snake_case, sin numbering_range_id (el rango de
// numeración es un dato local que Factus no recibe).
func TestToFactusFormat_SerializacionSnakeCase(t *testing.T) {
	payload := billing.ToFactusFormat(sampleDraft())
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var wire map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &wire))
	assert.Contains(t, wire, "reference_code")
	assert.Contains(t, wire, "payment_due_date")
	assert.Contains(t, wire, "billing_period")
	assert.NotContains(t, wire, "numbering_range_id")
	assert.NotContains(t, wire, "referenceCode")
}

// De punta a punta: una petición externa normalizada y vuelta a traducir debe
// conservar cantidades, precios y descuentos sin cambios numéricos.
func TestNormalizarYTraducir_ConservaLosNumeros(t *testing.T) {
	normalizer, _, _ := newNormalizer()
	req := parseRequest(t, externalBody)

	draft, err := normalizer.Normalize(context.Background(), req)
	require.NoError(t, err)

	payload := billing.ToFactusFormat(draft)
	require.Len(t, payload.Items, 2)

	assert.True(t, payload.Items[0].Quantity.Equal(decimal.NewFromInt(2)), "quantity: %s", payload.Items[0].Quantity)
	assert.True(t, payload.Items[0].Price.Equal(decimal.NewFromInt(250000)), "price: %s", payload.Items[0].Price)
	assert.True(t, payload.Items[0].DiscountRate.Equal(decimal.NewFromInt(10)), "discount_rate: %s", payload.Items[0].DiscountRate)
	assert.Equal(t, "19.00", payload.Items[0].TaxRate)
	assert.Equal(t, 0, payload.Items[0].IsExcluded)

	assert.True(t, payload.Items[1].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, payload.Items[1].Price.Equal(decimal.NewFromInt(80000)))
	assert.Equal(t, "5.00", payload.Items[1].TaxRate)
	assert.Equal(t, 1, payload.Items[1].IsExcluded)

	assert.Equal(t, "FAC-100", payload.ReferenceCode)
	assert.Equal(t, "2026-09-30", payload.PaymentDueDate)
	assert.Equal(t, "901234567", payload.Customer.Identification)
}

// La traducción es pura: el mismo borrador produce siempre el mismo payload.
func TestToFactusFormat_EsReferencialmenteTransparente(t *testing.T) {
	draft := sampleDraft()
	first := billing.ToFactusFormat(draft)
	second := billing.ToFactusFormat(draft)

	rawFirst, err := json.Marshal(first)
	require.NoError(t, err)
	rawSecond, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(rawFirst), string(rawSecond))
}
