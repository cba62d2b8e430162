package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Facturador-api/internal/domain"
)

// Querier abstrae pool o transacción para los repositorios.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// uniqueViolationField traduce una violación de constraint único (23505) al
// campo natural en conflicto. Devuelve nil si el error no es 23505.
// El nombre del campo viene del constraint (ej: customers_identification_key).
// invalidIDError traduce un 22P02 (invalid_text_representation) a entrada
// inválida: un id que no es UUID debe responder 400, no 500. Devuelve nil
// si el error no es 22P02.
func invalidIDError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return fmt.Errorf("%w: id con formato inválido", domain.ErrInvalidInput)
	}
	return nil
}

func uniqueViolationField(err error) *domain.DuplicateError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "identification"):
		return &domain.DuplicateError{Field: "identification"}
	case strings.Contains(pgErr.ConstraintName, "email"):
		return &domain.DuplicateError{Field: "email"}
	case strings.Contains(pgErr.ConstraintName, "code_reference"):
		return &domain.DuplicateError{Field: "code_reference"}
	default:
		return &domain.DuplicateError{Field: pgErr.ConstraintName}
	}
}
