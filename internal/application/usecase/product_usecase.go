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

// ProductUseCase gestiona el catálogo de productos.
type ProductUseCase struct {
	products repository.ProductRepository
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, log: log}
}

// Create registra un producto nuevo. code_reference es clave natural única.
func (uc *ProductUseCase) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.CodeReference == "" {
		return nil, fmt.Errorf("%w: code_reference es requerido", domain.ErrInvalidInput)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}

	existing, err := uc.products.GetByCodeReference(ctx, req.CodeReference)
	if err != nil {
		return nil, fmt.Errorf("verificar duplicado: %w", err)
	}
	if existing != nil {
		return nil, &domain.DuplicateError{Field: "code_reference"}
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:             uuid.NewString(),
		CodeReference:  req.CodeReference,
		Name:           req.Name,
		Price:          req.Price,
		TaxRate:        req.TaxRate,
		UnitMeasureID:  req.UnitMeasureID,
		StandardCodeID: req.StandardCodeID,
		IsExcluded:     req.IsExcluded,
		TributeID:      req.TributeID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", product.ID).Str("code_reference", product.CodeReference).Msg("producto creado")
	return dto.ToProductResponse(product), nil
}

// Update modifica un producto existente. Los campos nil del request no se
// tocan. Si cambia code_reference se verifica que no choque con otro producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, &domain.ReferenceNotFoundError{Kind: "producto", ID: id}
	}

	if req.CodeReference != nil && *req.CodeReference != product.CodeReference {
		other, err := uc.products.GetByCodeReference(ctx, *req.CodeReference)
		if err != nil {
			return nil, fmt.Errorf("verificar duplicado: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, &domain.DuplicateError{Field: "code_reference"}
		}
		product.CodeReference = *req.CodeReference
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.TaxRate != nil {
		product.TaxRate = *req.TaxRate
	}
	if req.UnitMeasureID != nil {
		product.UnitMeasureID = *req.UnitMeasureID
	}
	if req.StandardCodeID != nil {
		product.StandardCodeID = *req.StandardCodeID
	}
	if req.IsExcluded != nil {
		product.IsExcluded = *req.IsExcluded
	}
	if req.TributeID != nil {
		product.TributeID = *req.TributeID
	}
	product.UpdatedAt = time.Now().UTC()

	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", product.ID).Msg("producto actualizado")
	return dto.ToProductResponse(product), nil
}

// GetByID devuelve un producto por su ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, &domain.ReferenceNotFoundError{Kind: "producto", ID: id}
	}
	return dto.ToProductResponse(product), nil
}

// List devuelve una página de productos.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.products.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	out := make([]*dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = dto.ToProductResponse(p)
	}
	return out, nil
}
