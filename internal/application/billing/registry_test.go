package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/domain"
)

func validCustomerInput() billing.CustomerInput {
	return billing.CustomerInput{
		Identification:           "901234567",
		DV:                       "3",
		Company:                  "Acme SAS",
		Names:                    "Acme SAS",
		Address:                  "Calle 1 # 2-3",
		Email:                    "facturacion@acme.co",
		Phone:                    "3001234567",
		LegalOrganizationID:      "1",
		TributeID:                "21",
		IdentificationDocumentID: "6",
		MunicipalityID:           "980",
	}
}

func validProductInput() billing.ProductInput {
	return billing.ProductInput{
		CodeReference:  "SKU-001",
		Name:           "Servicio de consultoría",
		Price:          decimal.NewFromInt(250000),
		TaxRate:        decimal.NewFromInt(19),
		UnitMeasureID:  70,
		StandardCodeID: 1,
		TributeID:      1,
	}
}

func TestFindOrCreateCustomer_CreaYLuegoReutiliza(t *testing.T) {
	customers := newMemCustomerRepo()
	registry := billing.NewRegistry(customers, newMemProductRepo())
	ctx := context.Background()

	first, err := registry.FindOrCreateCustomer(ctx, validCustomerInput())
	require.NoError(t, err)
	require.NotEmpty(t, first.ID, "el cliente nuevo debe recibir ID")

	second, err := registry.FindOrCreateCustomer(ctx, validCustomerInput())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "la misma identificación debe resolver al mismo cliente")
}

func TestFindOrCreateCustomer_GanaLaPrimeraEscritura(t *testing.T) {
	customers := newMemCustomerRepo()
	registry := billing.NewRegistry(customers, newMemProductRepo())
	ctx := context.Background()

	first, err := registry.FindOrCreateCustomer(ctx, validCustomerInput())
	require.NoError(t, err)

	// Misma identificación con email distinto: se devuelve el existente
	// sin fusionar los campos entrantes.
	in := validCustomerInput()
	in.Email = "otro@acme.co"
	second, err := registry.FindOrCreateCustomer(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "facturacion@acme.co", second.Email, "los campos del primero no deben sobrescribirse")
}

func TestFindOrCreateCustomer_CampoRequeridoAusente(t *testing.T) {
	registry := billing.NewRegistry(newMemCustomerRepo(), newMemProductRepo())

	in := validCustomerInput()
	in.DV = ""
	_, err := registry.FindOrCreateCustomer(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "dv", "el error debe nombrar el campo ausente")
}

func TestFindOrCreateCustomer_EmailDuplicadoNombraCampo(t *testing.T) {
	customers := newMemCustomerRepo()
	registry := billing.NewRegistry(customers, newMemProductRepo())
	ctx := context.Background()

	_, err := registry.FindOrCreateCustomer(ctx, validCustomerInput())
	require.NoError(t, err)

	// Identificación nueva pero email ya registrado: el constraint decide.
	in := validCustomerInput()
	in.Identification = "800111222"
	_, err = registry.FindOrCreateCustomer(ctx, in)
	require.ErrorIs(t, err, domain.ErrDuplicate)

	var dup *domain.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field, "el conflicto debe nombrar el campo")
}

func TestFindOrCreateProduct_CreaYLuegoReutiliza(t *testing.T) {
	products := newMemProductRepo()
	registry := billing.NewRegistry(newMemCustomerRepo(), products)
	ctx := context.Background()

	first, err := registry.FindOrCreateProduct(ctx, validProductInput())
	require.NoError(t, err)

	// Mismo code_reference con precio distinto: gana la primera escritura.
	in := validProductInput()
	in.Price = decimal.NewFromInt(999999)
	second, err := registry.FindOrCreateProduct(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Price.Equal(decimal.NewFromInt(250000)), "el precio original no debe cambiar")
}

func TestFindOrCreateProduct_CodeReferenceRequerido(t *testing.T) {
	registry := billing.NewRegistry(newMemCustomerRepo(), newMemProductRepo())

	in := validProductInput()
	in.CodeReference = ""
	_, err := registry.FindOrCreateProduct(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "code_reference")
}
