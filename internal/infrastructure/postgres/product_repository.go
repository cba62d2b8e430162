package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code_reference, name, price, tax_rate, unit_measure_id,
		standard_code_id, is_excluded, tribute_id, created_at, updated_at`

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Un code_reference repetido se devuelve
// como DuplicateError.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CodeReference, p.Name, p.Price, p.TaxRate, p.UnitMeasureID,
		p.StandardCodeID, p.IsExcluded, p.TributeID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if dup := uniqueViolationField(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCodeReference obtiene un producto por su clave natural.
func (r *ProductRepo) GetByCodeReference(ctx context.Context, codeReference string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE code_reference = $1`, codeReference)
}

// List lista productos con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET code_reference = $2, name = $3, price = $4, tax_rate = $5, unit_measure_id = $6,
			standard_code_id = $7, is_excluded = $8, tribute_id = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CodeReference, p.Name, p.Price, p.TaxRate, p.UnitMeasureID,
		p.StandardCodeID, p.IsExcluded, p.TributeID, p.UpdatedAt,
	)
	if err != nil {
		if dup := uniqueViolationField(err); dup != nil {
			return dup
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if bad := invalidIDError(err); bad != nil {
			return nil, bad
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CodeReference, &p.Name, &p.Price, &p.TaxRate, &p.UnitMeasureID,
		&p.StandardCodeID, &p.IsExcluded, &p.TributeID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
