package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
)

// respondError traduce errores de dominio a la respuesta HTTP del boundary.
// Códigos: 400 validación/duplicado/referencia rota, 401 credencial ausente o
// malformada, 500 fallo de persistencia o del servicio externo. El detalle del
// error viaja en message; ninguno tumba el proceso.
func respondError(c *fiber.Ctx, err error) error {
	var dup *domain.DuplicateError
	if errors.As(err, &dup) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: dup.Error()})
	}

	var ref *domain.ReferenceNotFoundError
	if errors.As(err, &ref) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "REFERENCE_NOT_FOUND", Message: ref.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrCustomerNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CUSTOMER_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credencial Bearer requerida"})
	case errors.Is(err, domain.ErrExternalService):
		// El cuerpo de Factus viaja en el mensaje para diagnóstico.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXTERNAL_SERVICE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// respondNotFoundAware es respondError pero en contexto de consulta: un
// recurso inexistente es 404, no 400.
func respondNotFoundAware(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrCustomerNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	return respondError(c, err)
}
