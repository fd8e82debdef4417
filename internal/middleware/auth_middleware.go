package middleware

import (
	"strings"

	"go-inventory-api/pkg/apperror"
	"go-inventory-api/pkg/jwt"
	"go-inventory-api/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the Bearer token and requires scope. The token's
// subject is stored in c.Locals("subject") for downstream handlers.
func RequireAuth(signer *jwt.Signer, scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Error(c, apperror.Unauthorized("No autorizado", "Falta el token de autorización"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return response.Error(c, apperror.Unauthorized("No autorizado", "Formato de autorización inválido. Use: Bearer <token>"))
		}

		claims, err := signer.ValidateToken(parts[1])
		if err != nil {
			return response.Error(c, apperror.Unauthorized("No autorizado", "Token inválido o expirado"))
		}

		if claims.Scope != scope {
			return response.Error(c, apperror.Unauthorized("No autorizado", "El token no permite '"+scope+"'"))
		}

		c.Locals("subject", claims.Subject)
		return c.Next()
	}
}

// WriteGuard returns RequireAuth for write routes, or a pass-through
// handler when signer is nil and writes are left open.
func WriteGuard(signer *jwt.Signer) fiber.Handler {
	if signer == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return RequireAuth(signer, jwt.ScopeWrite)
}
