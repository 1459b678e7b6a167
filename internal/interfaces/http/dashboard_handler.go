package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vintage-erp/internal/application/dto"
	"github.com/jhoicas/vintage-erp/internal/application/workflow"
)

// DashboardHandler expone los KPI agregados del inventario.
type DashboardHandler struct {
	coordinator *workflow.Coordinator
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(coordinator *workflow.Coordinator) *DashboardHandler {
	return &DashboardHandler{coordinator: coordinator}
}

// GetSummary devuelve el resumen del inventario.
// GET /api/dashboard/summary
//
// Respuesta: SummaryResponse (stock_pieces, stock_value, unique_references,
// reference_stock_value, sold_pieces, sold_value, average_margin).
// Los KPI salen de la cache incremental: la petición no recorre las tablas.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	snap := h.coordinator.Snapshot()

	resp := dto.SummaryResponse{
		StockPieces:         snap.StockPieces,
		StockValue:          snap.StockValue.StringFixed(2),
		UniqueReferences:    snap.UniqueReferences,
		ReferenceStockValue: snap.ReferenceStockValue.StringFixed(2),
		SoldPieces:          snap.SoldPieces,
		SoldValue:           snap.SoldValue.StringFixed(2),
	}
	if snap.AverageMargin != nil {
		margin := snap.AverageMargin.StringFixed(2)
		resp.AverageMargin = &margin
	}
	return c.JSON(resp)
}
