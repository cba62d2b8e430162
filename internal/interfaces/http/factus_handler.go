package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/factus"
)

// TokenProvider obtiene un access token de Factus con las credenciales
// client_credentials configuradas en el servidor.
type TokenProvider interface {
	ObtainToken(ctx context.Context) (*factus.TokenResult, error)
}

// FactusHandler expone operaciones auxiliares contra Factus.
type FactusHandler struct {
	tokens TokenProvider
}

// NewFactusHandler construye el handler.
func NewFactusHandler(tokens TokenProvider) *FactusHandler {
	return &FactusHandler{tokens: tokens}
}

// Token pide un access token a Factus y lo devuelve al cliente para que lo use
// como credencial Bearer en las rutas de validación.
// POST /api/factus/token
func (h *FactusHandler) Token(c *fiber.Ctx) error {
	tok, err := h.tokens.ObtainToken(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TokenResponse{
		Message:     "token obtenido",
		AccessToken: tok.AccessToken,
		ExpiresIn:   tok.ExpiresIn,
	})
}
