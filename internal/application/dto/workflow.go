package dto

// CreatePurchaseRequest cuerpo de POST /api/purchases. Los campos numéricos
// y de fecha viajan como texto: el dominio tolera celdas con "€", comas
// decimales o fechas en varios formatos, igual que los workbooks de origen.
type CreatePurchaseRequest struct {
	Article           string `json:"article"`
	Marque            string `json:"marque"`
	Genre             string `json:"genre"`
	Reference         string `json:"reference"`
	Grade             string `json:"grade"`
	Fournisseur       string `json:"fournisseur"`
	DateAchat         string `json:"date_achat"`
	DateLivraison     string `json:"date_livraison"`
	QuantiteCommandee string `json:"quantite_commandee"`
	QuantiteRecue     string `json:"quantite_recue"`
	PrixTotal         string `json:"prix_total"`
	PrixUnitaire      string `json:"prix_unitaire"`
	FraisColissage    string `json:"frais_colissage"`
	FraisLavage       string `json:"frais_lavage"`
	Tracking          string `json:"tracking"`
}

// PrepareStockRequest cuerpo de POST /api/purchases/:id/stock.
type PrepareStockRequest struct {
	ReadyDate string `json:"ready_date"`
}

// DeletePurchasesRequest cuerpo de DELETE /api/purchases: índices de fila a
// eliminar (base cero, como los muestra el listado).
type DeletePurchasesRequest struct {
	Indices []int `json:"indices"`
}

// DeletePurchasesResponse resumen de la eliminación en cascada.
type DeletePurchasesResponse struct {
	PurchasesRemoved int `json:"purchases_removed"`
	StockRemoved     int `json:"stock_removed"`
}

// TransferStockRequest cuerpo de POST /api/stock/transfer.
type TransferStockRequest struct {
	PurchaseID string `json:"purchase_id"`
	SKU        string `json:"sku"`
	PrixVente  string `json:"prix_vente"`
	Lot        string `json:"lot"`
	Taille     string `json:"taille"`
}

// SaleRequest cuerpo de POST /api/sales.
type SaleRequest struct {
	SKU            string `json:"sku"`
	PrixVente      string `json:"prix_vente"`
	FraisColissage string `json:"frais_colissage"`
	DateVente      string `json:"date_vente"`
	Lot            string `json:"lot"`
	Taille         string `json:"taille"`
}

// ReturnRequest cuerpo de POST /api/returns.
type ReturnRequest struct {
	SKU  string `json:"sku"`
	Note string `json:"note"`
}

// RowResponse una fila de tabla tal cual, cabecera física → valor.
type RowResponse map[string]string

// RowsResponse página de filas más el total de la tabla.
type RowsResponse struct {
	Rows []RowResponse `json:"rows"`
	Page PageResponse  `json:"page"`
}

// PrepareStockResponse piezas creadas en la mise en stock.
type PrepareStockResponse struct {
	Created []RowResponse `json:"created"`
}

// SKUPreviewResponse base de référence generada para los datos indicados.
type SKUPreviewResponse struct {
	Base string `json:"base"`
}

// SummaryResponse KPI del inventario para el dashboard. Los importes van
// como texto con dos decimales; average_margin es null si no hay ventas.
type SummaryResponse struct {
	StockPieces         int     `json:"stock_pieces"`
	StockValue          string  `json:"stock_value"`
	UniqueReferences    int     `json:"unique_references"`
	ReferenceStockValue string  `json:"reference_stock_value"`
	SoldPieces          int     `json:"sold_pieces"`
	SoldValue           string  `json:"sold_value"`
	AverageMargin       *string `json:"average_margin"`
}

// ImportResponse resumen de una fusión de stock importado.
type ImportResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}
