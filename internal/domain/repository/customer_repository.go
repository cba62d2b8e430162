package repository

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// GetBy* devuelven (nil, nil) cuando no hay fila.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByIdentification(ctx context.Context, identification string) (*entity.Customer, error)
	// GetByIdentificationOrEmail busca por cualquiera de las dos claves naturales
	// (pre-chequeo de duplicados en la creación directa).
	GetByIdentificationOrEmail(ctx context.Context, identification, email string) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
}
