package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vintage-erp/internal/application/dto"
	"github.com/jhoicas/vintage-erp/internal/application/stockimport"
	"github.com/jhoicas/vintage-erp/internal/application/workflow"
	"github.com/jhoicas/vintage-erp/internal/domain/schema"
	"github.com/jhoicas/vintage-erp/internal/domain/table"
	"github.com/jhoicas/vintage-erp/internal/infrastructure/workbook"
	"github.com/jhoicas/vintage-erp/pkg/logger"
)

// AdminHandler importaciones de workbook y mantenimiento de índices.
type AdminHandler struct {
	coordinator *workflow.Coordinator
	refresher   *workflow.Refresher
	log         *logger.Logger
}

// NewAdminHandler construye el handler.
func NewAdminHandler(coordinator *workflow.Coordinator, refresher *workflow.Refresher, log *logger.Logger) *AdminHandler {
	return &AdminHandler{coordinator: coordinator, refresher: refresher, log: log.Component("http")}
}

// ImportStock fusiona la hoja Stock de un .xlsx subido con el stock vigente.
// POST /api/stock/import (multipart, campo "file"; query opcional "sheet")
func (h *AdminHandler) ImportStock(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "fichier manquant (champ \"file\")")
	}
	file, err := header.Open()
	if err != nil {
		return badRequest(c, "fichier illisible")
	}
	defer file.Close()

	sheet := c.Query("sheet", schema.SheetStock)
	incoming, err := workbook.LoadTableFrom(file, sheet)
	if err != nil {
		h.log.Warn().Err(err).Str("sheet", sheet).Msg("import de stock refusé")
		return badRequest(c, err.Error())
	}

	var res stockimport.Result
	h.coordinator.MergeStock(func(dest *table.Table) {
		res = stockimport.Merge(dest, incoming, h.log)
	})
	return c.JSON(dto.ImportResponse{Added: res.Added, Skipped: res.Skipped})
}

// Rebuild encola una reconstrucción completa de índices y cache.
// POST /api/admin/rebuild
func (h *AdminHandler) Rebuild(c *fiber.Ctx) error {
	h.refresher.Trigger()
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "scheduled"})
}
