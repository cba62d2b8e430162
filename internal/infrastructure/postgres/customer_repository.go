package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, identification, dv, company, trade_name, names, address, email, phone,
		legal_organization_id, tribute_id, identification_document_id, municipality_id, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente. Una violación de clave única (identification
// o email) se devuelve como DuplicateError indicando el campo.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Identification, c.DV, c.Company, c.TradeName, c.Names, c.Address, c.Email, c.Phone,
		c.LegalOrganizationID, c.TributeID, c.IdentificationDocumentID, c.MunicipalityID,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if dup := uniqueViolationField(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// GetByIdentification obtiene un cliente por su clave natural (NIT/cédula).
func (r *CustomerRepo) GetByIdentification(ctx context.Context, identification string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE identification = $1`, identification)
}

// GetByIdentificationOrEmail obtiene un cliente que coincida con cualquiera de las dos claves.
func (r *CustomerRepo) GetByIdentificationOrEmail(ctx context.Context, identification, email string) (*entity.Customer, error) {
	return r.getOne(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE identification = $1 OR email = $2`,
		identification, email)
}

// List lista clientes con paginación.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY names LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CustomerRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if bad := invalidIDError(err); bad != nil {
			return nil, bad
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.Identification, &c.DV, &c.Company, &c.TradeName, &c.Names, &c.Address, &c.Email, &c.Phone,
		&c.LegalOrganizationID, &c.TributeID, &c.IdentificationDocumentID, &c.MunicipalityID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
