// Package schema cataloga las cabeceras físicas de las cuatro hojas
// (Achats, Stock, Ventes, Compta) con sus variantes históricas de
// ortografía, más las listas de cabeceras por defecto para tablas vacías.
//
// Las cabeceras están en francés porque son las de los workbooks reales del
// cliente; tocarlas rompería la compatibilidad con los archivos existentes.
package schema

import "github.com/jhoicas/vintage-erp/internal/domain/table"

// Nombres de hoja del workbook de origen.
const (
	SheetAchats = "Achats"
	SheetStock  = "Stock"
	SheetVentes = "Ventes"
)

func field(name string, headers ...string) table.Field {
	return table.Field{Name: name, Headers: headers}
}

// Achats campos lógicos de la hoja de compras.
var Achats = struct {
	ID, Article, Marque, DateAchat, Genre, Reference, Grade,
	Fournisseur, Mois, MoisNum, DateLivraison, QuantiteRecue,
	QuantiteCommandee, DelaiLivraison, PretStock, DateMiseEnStock,
	FraisColissage, PrixAchatShip, PrixUnitaireTTC, PrixUnitaireBrut,
	TotalTTC, FraisLavage, Tracking table.Field
}{
	ID:                field("id", "ID"),
	Article:           field("article", "ARTICLES", "ARTICLE"),
	Marque:            field("marque", "MARQUE"),
	DateAchat:         field("date_achat", "DATE D'ACHAT"),
	Genre:             field("genre", "GENRE(data)", "GENRE(DATA)", "GENRE"),
	Reference:         field("reference", "REFERENCE"),
	Grade:             field("grade", "GRADE"),
	Fournisseur:       field("fournisseur", "FOURNISSEUR/CODE"),
	Mois:              field("mois", "MOIS"),
	MoisNum:           field("mois_num", "MOIS NUM"),
	DateLivraison:     field("date_livraison", "DATE DE LIVRAISON"),
	QuantiteRecue:     field("quantite_recue", "QUANTITÉ RECUE", "QUANTITE RECUE"),
	QuantiteCommandee: field("quantite_commandee", "QUANTITÉ COMMANDÉE"),
	DelaiLivraison:    field("delai_livraison", "DELAI DE LIVRAISON"),
	PretStock:         field("pret_stock", "PRÊT POUR MISE EN STOCK | DATE", "PRËT POUR MISE EN STOCK", "PRÊT POUR MISE EN STOCK"),
	DateMiseEnStock:   field("date_mise_en_stock", "MIS EN STOCK LE", "DATE DE MISE EN STOCK"),
	FraisColissage:    field("frais_colissage", "FRAIS DE COLISSAGE"),
	PrixAchatShip:     field("prix_achat_ship", "PRIX D'ACHAT SHIP INCLUS"),
	PrixUnitaireTTC:   field("prix_unitaire_ttc", "PRIX UNITAIRE TTC"),
	PrixUnitaireBrut:  field("prix_unitaire_brut", "PRIX UNITAIRE BRUTE"),
	TotalTTC:          field("total_ttc", "TOTAL TTC"),
	FraisLavage:       field("frais_lavage", "FRAIS DE LAVAGE"),
	Tracking:          field("tracking", "TRACKING"),
}

// Stock campos lógicos de la hoja de stock (una fila = una pieza física).
var Stock = struct {
	ID, SKU, Reference, Libelle, Article, Marque, PrixVente,
	TailleColis, Taille, Lot, DateLivraison, DateMiseEnStock,
	MisEnLigne, Publie, Vendu, VenteExporteeLe, ValiderSaisie table.Field
}{
	ID:              field("id", "ID"),
	SKU:             field("sku", "SKU"),
	Reference:       field("reference", "REFERENCE"),
	Libelle:         field("libelle", "LIBELLÉ", "LIBELLE"),
	Article:         field("article", "ARTICLES", "ARTICLE"),
	Marque:          field("marque", "MARQUE"),
	PrixVente:       field("prix_vente", "PRIX DE VENTE"),
	TailleColis:     field("taille_colis", "TAILLE DU COLIS", "TAILLE COLIS"),
	Taille:          field("taille", "TAILLE"),
	Lot:             field("lot", "LOT", "LOTS"),
	DateLivraison:   field("date_livraison", "DATE DE LIVRAISON"),
	DateMiseEnStock: field("date_mise_en_stock", "DATE DE MISE EN STOCK"),
	MisEnLigne:      field("mis_en_ligne", "MIS EN LIGNE | DATE DE MISE EN LIGNE", "MIS EN LIGNE", "DATE DE MISE EN LIGNE"),
	Publie:          field("publie", "PUBLIÉ | DATE DE PUBLICATION", "PUBLIÉ", "DATE DE PUBLICATION"),
	Vendu:           field("vendu", "VENDU | DATE DE VENTE", "VENDU", "DATE DE VENTE"),
	VenteExporteeLe: field("vente_exportee_le", "VENTE EXPORTEE LE"),
	ValiderSaisie:   field("valider_saisie", "VALIDER LA SAISIE", "VALIDER"),
}

// Ventes campos lógicos de la hoja de ventas.
var Ventes = struct {
	ID, DateVente, Article, SKU, PrixVente, FraisColissage,
	TailleColis, Taille, Lot, DelaiImmobilisation, DelaiMiseEnLigne,
	DelaiPublication, DelaiVente, Retour table.Field
}{
	ID:                  field("id", "ID"),
	DateVente:           field("date_vente", "DATE DE VENTE"),
	Article:             field("article", "ARTICLE", "ARTICLES"),
	SKU:                 field("sku", "SKU"),
	PrixVente:           field("prix_vente", "PRIX VENTE", "PRIX DE VENTE"),
	FraisColissage:      field("frais_colissage", "FRAIS DE COLISSAGE"),
	TailleColis:         field("taille_colis", "TAILLE DU COLIS"),
	Taille:              field("taille", "TAILLE"),
	Lot:                 field("lot", "LOT"),
	DelaiImmobilisation: field("delai_immobilisation", "DÉLAI D'IMMOBILISATION"),
	DelaiMiseEnLigne:    field("delai_mise_en_ligne", "DELAI DE MISE EN LIGNE"),
	DelaiPublication:    field("delai_publication", "DELAI DE PUBLICATION"),
	DelaiVente:          field("delai_vente", "DELAI DE VENTE"),
	Retour:              field("retour", "RETOUR"),
}

// Compta campos del libro mensual derivado de las ventas.
var Compta = struct {
	ID, SKU, Libelles, DateVente, MargeBrute, CoeffMarge, NbrPcsVendu table.Field
}{
	ID:          field("id", "ID"),
	SKU:         field("sku", "SKU"),
	Libelles:    field("libelles", "LIBELLÉS"),
	DateVente:   field("date_vente", "DATE DE VENTE"),
	MargeBrute:  field("marge_brute", "MARGE BRUTE"),
	CoeffMarge:  field("coeff_marge", "COEFF MARGE"),
	NbrPcsVendu: field("nbr_pcs_vendu", "NBR PCS VENDU"),
}

// AchatsHeaders cabeceras por defecto de una tabla Achats vacía, en el
// orden de las columnas persistidas.
var AchatsHeaders = []string{
	"ID", "ARTICLES", "MARQUE", "GENRE", "GENRE(data)", "DATE D'ACHAT",
	"REFERENCE", "GRADE", "FOURNISSEUR/CODE", "MOIS", "MOIS NUM",
	"DATE DE LIVRAISON", "DELAI DE LIVRAISON", "PRIX D'ACHAT SHIP INCLUS",
	"QUANTITÉ COMMANDÉE", "QUANTITÉ RECUE", "PRIX UNITAIRE BRUTE",
	"FRAIS DE LAVAGE", "FRAIS DE COLISSAGE", "TOTAL TTC",
	"PRIX UNITAIRE TTC", "TRACKING", "PRÊT POUR MISE EN STOCK | DATE",
	"MIS EN STOCK LE",
}

// StockHeaders cabeceras por defecto de una tabla Stock vacía.
var StockHeaders = []string{
	"ID", "SKU", "REFERENCE", "LIBELLÉ", "MARQUE", "DATE DE LIVRAISON",
	"DATE DE MISE EN STOCK", "MIS EN LIGNE | DATE DE MISE EN LIGNE",
	"PUBLIÉ | DATE DE PUBLICATION", "VENDU | DATE DE VENTE",
	"PRIX DE VENTE", "TAILLE", "LOTS", "VALIDER",
}

// VentesHeaders cabeceras por defecto de una tabla Ventes vacía.
var VentesHeaders = []string{
	"ID", "DATE DE VENTE", "ARTICLE", "SKU", "PRIX VENTE",
	"DÉLAI D'IMMOBILISATION", "DELAI DE MISE EN LIGNE",
	"DELAI DE PUBLICATION", "DELAI DE VENTE", "FRAIS DE COLISSAGE",
	"TAILLE", "LOT", "RETOUR",
}

// ComptaHeaders cabeceras del libro mensual.
var ComptaHeaders = []string{
	"ID", "SKU", "LIBELLÉS", "DATE DE VENTE", "MARGE BRUTE",
	"COEFF MARGE", "NBR PCS VENDU",
}

// MonthNamesFR nombres de mes para la etiqueta MOIS.
var MonthNamesFR = []string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}
