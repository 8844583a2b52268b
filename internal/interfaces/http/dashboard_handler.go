package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Despacho-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen operativo de la sucursal.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (articles, customers, bookings, deliveries,
// deliveries_today, articles_with_rate, rate_deviation).
// No requiere parámetros; la sucursal sale del token.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return unauthorizedBranch(c)
	}
	summary, err := h.uc.GetSummary(c.Context(), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
