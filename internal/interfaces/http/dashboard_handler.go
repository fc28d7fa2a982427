package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/invorya/stock-recon/internal/application/analytics"
)

// DashboardHandler maneja el resumen operativo del inventario.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler de dashboard.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del inventario
// @Description  Recuentos de catálogo, unidades vivas, valorización e instantáneas desfasadas. total_units y stale_snapshots se calculan sobre los registros vivos de warehouseStocks, no sobre los snapshots de los productos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
