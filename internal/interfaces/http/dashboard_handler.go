package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ordersync-api/internal/application/analytics"
	"github.com/jhoicas/ordersync-api/internal/domain/timerange"
)

// DashboardHandler maneja los endpoints del tablero de administración.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve conteos por estado, pedidos por empleado y el ranking del rango pedido.
// GET /api/dashboard/summary?range=month
//
// range: today|week|month|year|all|custom (custom requiere start y end, YYYY-MM-DD).
// Un rango desconocido es 400 VALIDATION.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	r, err := timerange.ParseRange(c.Query("range"))
	if err != nil {
		return respondError(c, err)
	}
	filter := timerange.Filter{Range: r, Start: c.Query("start"), End: c.Query("end")}

	summary, err := h.uc.GetSummary(c.UserContext(), GetSession(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
