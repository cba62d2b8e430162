package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, numbering_range_id, reference_code, observation, payment_form,
		payment_due_date, payment_method_code, period_start_date, period_start_time,
		period_end_date, period_end_time, status, customer_id, factus_data, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository. Usa el pool directamente
// porque Create abre su propia transacción (cabecera + líneas atómicas).
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository construye el adaptador sobre el pool.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

// Create guarda cabecera y líneas dentro de una transacción.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice, items []*entity.InvoiceItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = tx.Exec(ctx, query,
		inv.ID, inv.NumberingRangeID, inv.ReferenceCode, inv.Observation, inv.PaymentForm,
		inv.PaymentDueDate, inv.PaymentMethodCode,
		inv.BillingPeriod.StartDate, inv.BillingPeriod.StartTime,
		inv.BillingPeriod.EndDate, inv.BillingPeriod.EndTime,
		inv.Status, inv.CustomerID, inv.FactusData, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if dup := uniqueViolationField(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	for _, it := range items {
		taxes, err := json.Marshal(it.WithholdingTaxes)
		if err != nil {
			return fmt.Errorf("marshal withholding taxes: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO invoice_items (id, invoice_id, line_number, product_id, quantity, discount_rate, withholding_taxes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.InvoiceID, it.Position, it.ProductID, it.Quantity, it.DiscountRate, taxes,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if bad := invalidIDError(err); bad != nil {
			return nil, bad
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetItemsByInvoiceID obtiene las líneas en su orden de llegada.
func (r *InvoiceRepo) GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, invoice_id, line_number, product_id, quantity, discount_rate, withholding_taxes
		FROM invoice_items WHERE invoice_id = $1 ORDER BY line_number`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		var taxes []byte
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.ProductID, &it.Quantity, &it.DiscountRate, &taxes); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		if len(taxes) > 0 {
			if err := json.Unmarshal(taxes, &it.WithholdingTaxes); err != nil {
				return nil, fmt.Errorf("unmarshal withholding taxes: %w", err)
			}
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista facturas de la más reciente a la más antigua.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// AttachValidation guarda factusData y marca la factura como validated en un
// solo update condicionado al ID.
func (r *InvoiceRepo) AttachValidation(ctx context.Context, id string, factusData json.RawMessage) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices SET factus_data = $2, status = $3, updated_at = $4
		WHERE id = $1`,
		id, factusData, entity.StatusValidated, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("attach validation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var factusData []byte
	err := row.Scan(
		&inv.ID, &inv.NumberingRangeID, &inv.ReferenceCode, &inv.Observation, &inv.PaymentForm,
		&inv.PaymentDueDate, &inv.PaymentMethodCode,
		&inv.BillingPeriod.StartDate, &inv.BillingPeriod.StartTime,
		&inv.BillingPeriod.EndDate, &inv.BillingPeriod.EndTime,
		&inv.Status, &inv.CustomerID, &factusData, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(factusData) > 0 {
		inv.FactusData = json.RawMessage(factusData)
	}
	return &inv, nil
}
