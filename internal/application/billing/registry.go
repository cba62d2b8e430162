package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// CustomerInput campos canónicos para resolver un cliente por clave natural.
type CustomerInput struct {
	Identification           string
	DV                       string
	Company                  string
	TradeName                string
	Names                    string
	Address                  string
	Email                    string
	Phone                    string
	LegalOrganizationID      string
	TributeID                string
	IdentificationDocumentID string
	MunicipalityID           string
}

// ProductInput campos canónicos para resolver un producto por clave natural.
type ProductInput struct {
	CodeReference  string
	Name           string
	Price          decimal.Decimal
	TaxRate        decimal.Decimal
	UnitMeasureID  int
	StandardCodeID int
	IsExcluded     bool
	TributeID      int
}

// Registry resuelve clientes y productos por clave natural con semántica
// find-or-create: si la entidad existe se devuelve sin fusionar los campos
// entrantes (gana la primera escritura); si no, se crea con ellos.
//
// No hay aislamiento transaccional entre el lookup y el create: dos peticiones
// concurrentes pueden intentar crear la misma clave. El constraint único del
// storage es el árbitro y el conflicto resultante se propaga como
// DuplicateError, nunca se reintenta en silencio.
type Registry struct {
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

// NewRegistry construye el registro sobre los repositorios.
func NewRegistry(customers repository.CustomerRepository, products repository.ProductRepository) *Registry {
	return &Registry{customers: customers, products: products}
}

// FindOrCreateCustomer busca por identification; crea el cliente si no existe.
func (r *Registry) FindOrCreateCustomer(ctx context.Context, in CustomerInput) (*entity.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := r.customers.GetByIdentification(ctx, in.Identification)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:                       uuid.New().String(),
		Identification:           in.Identification,
		DV:                       in.DV,
		Company:                  in.Company,
		TradeName:                in.TradeName,
		Names:                    in.Names,
		Address:                  in.Address,
		Email:                    in.Email,
		Phone:                    in.Phone,
		LegalOrganizationID:      in.LegalOrganizationID,
		TributeID:                in.TributeID,
		IdentificationDocumentID: in.IdentificationDocumentID,
		MunicipalityID:           in.MunicipalityID,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if err := r.customers.Create(ctx, customer); err != nil {
		// DuplicateError (carrera o email repetido) sube tal cual
		return nil, err
	}
	return customer, nil
}

// FindOrCreateProduct busca por code_reference; crea el producto si no existe.
func (r *Registry) FindOrCreateProduct(ctx context.Context, in ProductInput) (*entity.Product, error) {
	if in.CodeReference == "" {
		return nil, fmt.Errorf("%w: code_reference es requerido", domain.ErrInvalidInput)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	existing, err := r.products.GetByCodeReference(ctx, in.CodeReference)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		CodeReference:  in.CodeReference,
		Name:           in.Name,
		Price:          in.Price,
		TaxRate:        in.TaxRate,
		UnitMeasureID:  in.UnitMeasureID,
		StandardCodeID: in.StandardCodeID,
		IsExcluded:     in.IsExcluded,
		TributeID:      in.TributeID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (in CustomerInput) validate() error {
	required := []struct{ name, value string }{
		{"identification", in.Identification},
		{"dv", in.DV},
		{"names", in.Names},
		{"address", in.Address},
		{"email", in.Email},
		{"phone", in.Phone},
		{"legal_organization_id", in.LegalOrganizationID},
		{"tribute_id", in.TributeID},
		{"identification_document_id", in.IdentificationDocumentID},
		{"municipality_id", in.MunicipalityID},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, f.name)
		}
	}
	return nil
}
