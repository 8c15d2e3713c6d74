package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ordersync-api/internal/application/dto"
	"github.com/jhoicas/ordersync-api/internal/domain/policy"
)

// RequireTab devuelve un middleware Fiber que verifica que el rol de la sesión pueda abrir la pestaña.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalSession).
//
// Comportamiento:
//   - 401 Unauthorized → no hay sesión en el contexto.
//   - 403 Forbidden    → la pestaña no es visible para el rol.
func RequireTab(tab policy.Tab) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if s == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "sesión no encontrada",
			})
		}
		if !policy.CanViewTab(s, tab) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "la pestaña '" + string(tab) + "' no está disponible para su rol",
			})
		}
		return c.Next()
	}
}
