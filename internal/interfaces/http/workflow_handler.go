package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vintage-erp/internal/application/dto"
	"github.com/jhoicas/vintage-erp/internal/application/workflow"
	"github.com/jhoicas/vintage-erp/internal/domain"
	"github.com/jhoicas/vintage-erp/internal/domain/table"
)

// WorkflowHandler expone el ciclo Achats → Stock → Ventes sobre HTTP.
type WorkflowHandler struct {
	coordinator *workflow.Coordinator
}

// NewWorkflowHandler construye el handler.
func NewWorkflowHandler(coordinator *workflow.Coordinator) *WorkflowHandler {
	return &WorkflowHandler{coordinator: coordinator}
}

// CreatePurchase registra un achat nuevo.
// POST /api/purchases
func (h *WorkflowHandler) CreatePurchase(c *fiber.Ctx) error {
	var req dto.CreatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "corps de requête illisible")
	}
	row, err := h.coordinator.CreatePurchase(workflow.PurchaseInput{
		Article:           req.Article,
		Marque:            req.Marque,
		Genre:             req.Genre,
		Reference:         req.Reference,
		Grade:             req.Grade,
		Fournisseur:       req.Fournisseur,
		DateAchat:         req.DateAchat,
		DateLivraison:     req.DateLivraison,
		QuantiteCommandee: req.QuantiteCommandee,
		QuantiteRecue:     req.QuantiteRecue,
		PrixTotal:         req.PrixTotal,
		PrixUnitaire:      req.PrixUnitaire,
		FraisColissage:    req.FraisColissage,
		FraisLavage:       req.FraisLavage,
		Tracking:          req.Tracking,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rowDTO(row))
}

// ListPurchases devuelve una página de achats.
// GET /api/purchases?limit=&offset=
func (h *WorkflowHandler) ListPurchases(c *fiber.Ctx) error {
	return listPage(c, h.coordinator.PurchasesPage)
}

// ListStock devuelve una página de piezas en stock.
// GET /api/stock?limit=&offset=
func (h *WorkflowHandler) ListStock(c *fiber.Ctx) error {
	return listPage(c, h.coordinator.StockPage)
}

// ListSales devuelve una página de ventas.
// GET /api/sales?limit=&offset=
func (h *WorkflowHandler) ListSales(c *fiber.Ctx) error {
	return listPage(c, h.coordinator.SalesPage)
}

// PrepareStock sella la mise en stock del achat y crea sus piezas.
// POST /api/purchases/:id/stock
func (h *WorkflowHandler) PrepareStock(c *fiber.Ctx) error {
	var req dto.PrepareStockRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "corps de requête illisible")
		}
	}
	created, err := h.coordinator.PrepareStockFromPurchase(c.Params("id"), req.ReadyDate)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.RowResponse, 0, len(created))
	for _, row := range created {
		out = append(out, rowDTO(row))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PrepareStockResponse{Created: out})
}

// DeletePurchases elimina achats por índice de fila, con cascada al stock.
// DELETE /api/purchases
func (h *WorkflowHandler) DeletePurchases(c *fiber.Ctx) error {
	var req dto.DeletePurchasesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "corps de requête illisible")
	}
	if len(req.Indices) == 0 {
		return badRequest(c, "aucun indice fourni")
	}
	purchases, stock := h.coordinator.DeletePurchases(req.Indices)
	return c.JSON(dto.DeletePurchasesResponse{
		PurchasesRemoved: purchases,
		StockRemoved:     stock,
	})
}

// TransferStock alta manual de una pieza.
// POST /api/stock/transfer
func (h *WorkflowHandler) TransferStock(c *fiber.Ctx) error {
	var req dto.TransferStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "corps de requête illisible")
	}
	if req.SKU == "" {
		return badRequest(c, "sku manquant")
	}
	row, err := h.coordinator.TransferToStock(workflow.StockInput{
		PurchaseID: req.PurchaseID,
		SKU:        req.SKU,
		PrixVente:  req.PrixVente,
		Lot:        req.Lot,
		Taille:     req.Taille,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rowDTO(row))
}

// RegisterSale registra (o corrige) la venta de una pieza.
// POST /api/sales
func (h *WorkflowHandler) RegisterSale(c *fiber.Ctx) error {
	var req dto.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "corps de requête illisible")
	}
	if req.SKU == "" {
		return badRequest(c, "sku manquant")
	}
	row, err := h.coordinator.RegisterSale(workflow.SaleInput{
		SKU:            req.SKU,
		PrixVente:      req.PrixVente,
		FraisColissage: req.FraisColissage,
		DateVente:      req.DateVente,
		Lot:            req.Lot,
		Taille:         req.Taille,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rowDTO(row))
}

// RegisterReturn marca el retour de una venta y devuelve la pieza al stock.
// POST /api/returns
func (h *WorkflowHandler) RegisterReturn(c *fiber.Ctx) error {
	var req dto.ReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "corps de requête illisible")
	}
	if req.SKU == "" {
		return badRequest(c, "sku manquant")
	}
	row, err := h.coordinator.RegisterReturn(req.SKU, req.Note)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(rowDTO(row))
}

// PreviewSKU devuelve la base de référence que se generaría.
// GET /api/sku/preview?article=&marque=&genre=
func (h *WorkflowHandler) PreviewSKU(c *fiber.Ctx) error {
	base := h.coordinator.BuildSKUBase(
		c.Query("article"),
		c.Query("marque"),
		c.Query("genre"),
	)
	return c.JSON(dto.SKUPreviewResponse{Base: base})
}

func listPage(c *fiber.Ctx, page func(limit, offset int) ([]table.Row, int)) error {
	var req dto.PageRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "paramètres de pagination invalides")
	}
	req.DefaultPage()
	rows, total := page(req.Limit, req.Offset)
	out := make([]dto.RowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowDTO(row))
	}
	return c.JSON(dto.RowsResponse{
		Rows: out,
		Page: dto.PageResponse{Limit: req.Limit, Offset: req.Offset, Total: total},
	})
}

func rowDTO(row table.Row) dto.RowResponse {
	out := make(dto.RowResponse, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "BAD_REQUEST", Message: message,
	})
}

// domainError traduce los errores centinela del dominio a códigos HTTP.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrPurchaseNotFound),
		errors.Is(err, domain.ErrSKUNotFound),
		errors.Is(err, domain.ErrSaleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrAlreadyPrepared):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "ALREADY_PREPARED", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNoQuantity), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
