package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/pkg/logger"
)

// CustomerUseCase gestiona el registro de clientes.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	log       *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customers repository.CustomerRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, log: log}
}

// Create registra un cliente nuevo. A diferencia del alta implícita durante la
// normalización de facturas, aquí un duplicado es un error: se pre-chequea por
// identificación o email para nombrar el campo en conflicto.
func (uc *CustomerUseCase) Create(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if req.Identification == "" {
		return nil, fmt.Errorf("%w: identification es requerido", domain.ErrInvalidInput)
	}
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email es requerido", domain.ErrInvalidInput)
	}
	if req.Names == "" {
		return nil, fmt.Errorf("%w: names es requerido", domain.ErrInvalidInput)
	}

	existing, err := uc.customers.GetByIdentificationOrEmail(ctx, req.Identification, req.Email)
	if err != nil {
		return nil, fmt.Errorf("verificar duplicado: %w", err)
	}
	if existing != nil {
		field := "email"
		if existing.Identification == req.Identification {
			field = "identification"
		}
		return nil, &domain.DuplicateError{Field: field}
	}

	now := time.Now().UTC()
	customer := &entity.Customer{
		ID:                       uuid.NewString(),
		Identification:           req.Identification,
		DV:                       req.DV,
		Company:                  req.Company,
		TradeName:                req.TradeName,
		Names:                    req.Names,
		Address:                  req.Address,
		Email:                    req.Email,
		Phone:                    req.Phone,
		LegalOrganizationID:      req.LegalOrganizationID,
		TributeID:                req.TributeID,
		IdentificationDocumentID: req.IdentificationDocumentID,
		MunicipalityID:           req.MunicipalityID,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	// El pre-chequeo no es atómico con el insert: el constraint único decide
	// ante una carrera y el DuplicateError del repo sube tal cual.
	if err := uc.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	uc.log.Info().Str("customer_id", customer.ID).Str("identification", customer.Identification).Msg("cliente creado")
	return dto.ToCustomerResponse(customer), nil
}

// GetByID devuelve un cliente por su ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return dto.ToCustomerResponse(customer), nil
}

// List devuelve una página de clientes.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	customers, err := uc.customers.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make([]*dto.CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = dto.ToCustomerResponse(c)
	}
	return out, nil
}
