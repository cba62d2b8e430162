package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrCustomerNotFound = errors.New("cliente no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrExternalService  = errors.New("error del servicio de facturación externo")
	ErrPersistence      = errors.New("error de persistencia")
)

// DuplicateError es una violación de clave natural. Field indica el campo en
// conflicto (identification, email, code_reference) para que el cliente sepa
// qué corregir.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("ya existe un registro con ese %s", e.Field)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// ReferenceNotFoundError indica que una petición en formato local referencia
// un ID inexistente. Kind es el tipo de entidad (ej: "producto").
type ReferenceNotFoundError struct {
	Kind string
	ID   string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Kind, e.ID)
}

func (e *ReferenceNotFoundError) Unwrap() error { return ErrNotFound }

// ExternalServiceError es un fallo de red o una respuesta no exitosa de Factus.
// Body conserva el cuerpo devuelto por el servicio cuando existe (diagnóstico);
// Reason guarda el mensaje del error de transporte cuando no hubo respuesta.
type ExternalServiceError struct {
	StatusCode int
	Body       string
	Reason     string
}

func (e *ExternalServiceError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("factus respondió %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("fallo al contactar factus: %s", e.Reason)
}

func (e *ExternalServiceError) Unwrap() error { return ErrExternalService }
