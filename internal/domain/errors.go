package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los mensajes están en
// francés porque se muestran tal cual al usuario final de la aplicación.
var (
	ErrPurchaseNotFound = errors.New("achat introuvable")
	ErrSKUNotFound      = errors.New("article introuvable dans le stock")
	ErrSaleNotFound     = errors.New("aucune vente trouvée pour ce SKU")
	ErrAlreadyPrepared  = errors.New("achat déjà mis en stock")
	ErrNoQuantity       = errors.New("quantité reçue manquante ou nulle")
	ErrInvalidInput     = errors.New("saisie invalide")
)
