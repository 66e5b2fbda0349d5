package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-equipos/internal/application/analytics"
)

// DashboardHandler resumen del inventario y reporte PDF.
type DashboardHandler struct {
	dashboard *analytics.DashboardUseCase
	reports   *analytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *analytics.DashboardUseCase, reports *analytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports}
}

// GetSummary godoc
// @Summary      Resumen del inventario
// @Description  Totales de equipos y unidades, sin stock, stock bajo y movimientos de los últimos 30 días.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.dashboard.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// InventoryPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/inventory.pdf [get]
func (h *DashboardHandler) InventoryPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.reports.InventoryPDF(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
