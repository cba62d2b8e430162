package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/domain"
)

func TestUniqueViolationField_TraduceConstraintACampo(t *testing.T) {
	cases := []struct {
		constraint string
		field      string
	}{
		{"customers_identification_key", "identification"},
		{"customers_email_key", "email"},
		{"products_code_reference_key", "code_reference"},
		{"otra_constraint", "otra_constraint"},
	}
	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			err := &pgconn.PgError{Code: "23505", ConstraintName: tc.constraint}
			dup := uniqueViolationField(fmt.Errorf("insert: %w", err))
			require.NotNil(t, dup)
			assert.Equal(t, tc.field, dup.Field)
			assert.ErrorIs(t, dup, domain.ErrDuplicate)
		})
	}
}

func TestInvalidIDError_Traduce22P02AEntradaInvalida(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "no-soy-uuid"`}
	err := invalidIDError(fmt.Errorf("get invoice: %w", pgErr))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un id que no es UUID debe ser 400, no 500")
}

func TestInvalidIDError_IgnoraOtrosErrores(t *testing.T) {
	assert.Nil(t, invalidIDError(errors.New("timeout")))
	assert.Nil(t, invalidIDError(&pgconn.PgError{Code: "23505"}))
	assert.Nil(t, invalidIDError(nil))
}

func TestUniqueViolationField_IgnoraOtrosErrores(t *testing.T) {
	assert.Nil(t, uniqueViolationField(errors.New("timeout")))
	assert.Nil(t, uniqueViolationField(&pgconn.PgError{Code: "23503"}), "una FK rota no es un duplicado")
	assert.Nil(t, uniqueViolationField(nil))
}
