package workflow

// Entradas de las operaciones del coordinador. Los campos numéricos y de
// fecha llegan como texto tal cual los tecleó el usuario o los trae la hoja
// de cálculo; el coordinador los interpreta con tolerancia (valor ilegible
// -> cero/ausente, nunca error).

// PurchaseInput datos para crear una commande d'achat.
type PurchaseInput struct {
	Article           string
	Marque            string
	Genre             string
	Reference         string // vacío -> se deriva con el generador de SKU
	Grade             string
	Fournisseur       string
	DateAchat         string
	DateLivraison     string
	QuantiteCommandee string
	QuantiteRecue     string // vacío -> toma la quantité commandée
	PrixTotal         string // TOTAL TTC; vacío -> se deriva de unitaire*qty+frais
	PrixUnitaire      string // vacío -> se deriva de total/qty
	FraisColissage    string
	FraisLavage       string
	Tracking          string
}

// StockInput datos para el alta manual de una pieza suelta.
type StockInput struct {
	PurchaseID string
	SKU        string
	PrixVente  string
	Lot        string
	Taille     string
}

// SaleInput datos para registrar una venta.
type SaleInput struct {
	SKU            string
	PrixVente      string
	FraisColissage string
	DateVente      string // vacío -> hoy
	Lot            string
	Taille         string
}
