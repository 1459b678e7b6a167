package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vintage-erp/internal/application/workflow"
	"github.com/jhoicas/vintage-erp/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Coordinator *workflow.Coordinator
	Refresher   *workflow.Refresher
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	wf := NewWorkflowHandler(deps.Coordinator)
	admin := NewAdminHandler(deps.Coordinator, deps.Refresher, deps.Log)
	dashboard := NewDashboardHandler(deps.Coordinator)

	// Achats
	purchases := api.Group("/purchases")
	purchases.Get("/", wf.ListPurchases)
	purchases.Post("/", wf.CreatePurchase)
	purchases.Delete("/", wf.DeletePurchases)
	purchases.Post("/:id/stock", wf.PrepareStock)

	// Stock
	stock := api.Group("/stock")
	stock.Get("/", wf.ListStock)
	stock.Post("/transfer", wf.TransferStock)
	stock.Post("/import", admin.ImportStock)

	// Ventes et retours
	api.Get("/sales", wf.ListSales)
	api.Post("/sales", wf.RegisterSale)
	api.Post("/returns", wf.RegisterReturn)

	// Références
	api.Get("/sku/preview", wf.PreviewSKU)

	// Dashboard
	api.Get("/dashboard/summary", dashboard.GetSummary)

	// Maintenance
	api.Post("/admin/rebuild", admin.Rebuild)
}
