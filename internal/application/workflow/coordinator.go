// Package workflow orquesta el ciclo de vida Achats → Stock → Ventes →
// Compta sobre las cuatro tablas en memoria, manteniendo índices de acceso
// O(1) y una cache incremental de KPIs coherente con cada mutación.
package workflow

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vintage-erp/internal/domain"
	"github.com/jhoicas/vintage-erp/internal/domain/schema"
	"github.com/jhoicas/vintage-erp/internal/domain/sku"
	"github.com/jhoicas/vintage-erp/internal/domain/table"
	"github.com/jhoicas/vintage-erp/pkg/datefmt"
	"github.com/jhoicas/vintage-erp/pkg/logger"
)

// saleEntry última venta conocida de un SKU más su fila de libro derivada
// (nil si la tabla Compta no tenía cabeceras al registrarla).
type saleEntry struct {
	sale   table.Row
	ledger table.Row
}

// Coordinator es el único escritor de las cuatro tablas. Todas las
// operaciones públicas toman el mutex durante toda su duración: mutación de
// filas, índices y cache son una unidad atómica. La validación referencial
// precede siempre a la primera mutación, así un error nunca deja estado
// parcial visible.
type Coordinator struct {
	mu sync.Mutex

	achats *table.Table
	stock  *table.Table
	ventes *table.Table
	compta *table.Table

	purchaseByID map[string]table.Row
	stockBySKU   map[string]table.Row
	saleBySKU    map[string]*saleEntry

	maxPurchaseID int
	maxSaleID     int
	suffixes      *sku.SuffixAllocator
	cache         *Cache

	log *logger.Logger
}

// NewCoordinator construye el coordinador sobre las tablas ya cargadas y
// ejecuta la pasada única de reconciliación (índices, contadores de id,
// sufijos, cache).
func NewCoordinator(achats, stock, ventes, compta *table.Table, log *logger.Logger) *Coordinator {
	c := &Coordinator{
		achats:   achats,
		stock:    stock,
		ventes:   ventes,
		compta:   compta,
		suffixes: sku.NewSuffixAllocator(),
		cache:    NewCache(),
		log:      log.Component("workflow"),
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebuildLocked()
	return c
}

// BuildSKUBase expone el generador de références para previsualización en el
// front. Pura, sin lock.
func (c *Coordinator) BuildSKUBase(article, marque, genre string) string {
	return sku.BuildBase(article, marque, genre)
}

// Snapshot devuelve los KPI del inventario en O(1).
func (c *Coordinator) Snapshot() InventorySnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Snapshot()
}

// WithTables ejecuta fn con las cuatro tablas bajo el lock del coordinador.
// Es la vía de los consumidores que necesitan una vista consistente
// (persistencia, export a workbook). fn no debe retener las tablas.
func (c *Coordinator) WithTables(fn func(achats, stock, ventes, compta *table.Table) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.achats, c.stock, c.ventes, c.compta)
}

// PurchasesPage devuelve una página de filas de Achats (copias) y el total.
func (c *Coordinator) PurchasesPage(limit, offset int) ([]table.Row, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pageOf(c.achats, limit, offset)
}

// StockPage devuelve una página de filas de Stock (copias) y el total.
func (c *Coordinator) StockPage(limit, offset int) ([]table.Row, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pageOf(c.stock, limit, offset)
}

// SalesPage devuelve una página de filas de Ventes (copias) y el total.
func (c *Coordinator) SalesPage(limit, offset int) ([]table.Row, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pageOf(c.ventes, limit, offset)
}

func pageOf(t *table.Table, limit, offset int) ([]table.Row, int) {
	total := t.Len()
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return nil, total
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]table.Row, 0, end-offset)
	for i := offset; i < end; i++ {
		src := t.Row(i)
		copied := make(table.Row, len(src))
		for k, v := range src {
			copied[k] = v
		}
		out = append(out, copied)
	}
	return out, total
}

// CreatePurchase asigna el siguiente id de achat, calcula los campos
// derivados (mois, délai de livraison, precio unitario o total según cuál
// venga informado), resuelve o genera la référence, e indexa la fila nueva.
// Los valores numéricos o de fecha ilegibles degradan a cero/ausente.
func (c *Coordinator) CreatePurchase(input PurchaseInput) (table.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.maxPurchaseID++
	id := strconv.Itoa(c.maxPurchaseID)

	dateAchat := datefmt.Normalize(input.DateAchat)
	if dateAchat == "" {
		dateAchat = datefmt.Today()
	}
	livraison := datefmt.Normalize(input.DateLivraison)
	if livraison == "" {
		livraison = datefmt.Today()
	}

	qtyCmd := table.IntOrZero(input.QuantiteCommandee)
	qtyRec := table.IntOrZero(input.QuantiteRecue)
	if qtyRec == 0 {
		qtyRec = qtyCmd
	}

	unit := table.ParseDecimal(input.PrixUnitaire)
	total := table.ParseDecimal(input.PrixTotal)
	frais := table.ParseDecimal(input.FraisColissage)
	lavage := table.ParseDecimal(input.FraisLavage)
	qtyRecDec := decimal.NewFromInt(int64(qtyRec))
	switch {
	case total.IsZero() && !unit.IsZero():
		total = unit.Mul(qtyRecDec).Add(frais)
	case unit.IsZero() && !total.IsZero() && qtyRec > 0:
		unit = total.Div(qtyRecDec)
	}

	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		reference = sku.BuildBase(input.Article, input.Marque, input.Genre)
	}

	row := table.Row{}
	set := func(f table.Field, v string) { c.achats.SetValue(row, f, v) }
	set(schema.Achats.ID, id)
	set(schema.Achats.Article, strings.TrimSpace(input.Article))
	set(schema.Achats.Marque, strings.TrimSpace(input.Marque))
	set(schema.Achats.Genre, strings.TrimSpace(input.Genre))
	set(schema.Achats.Reference, reference)
	set(schema.Achats.Grade, strings.TrimSpace(input.Grade))
	set(schema.Achats.Fournisseur, strings.TrimSpace(input.Fournisseur))
	set(schema.Achats.DateAchat, dateAchat)
	set(schema.Achats.DateLivraison, livraison)
	set(schema.Achats.Tracking, strings.TrimSpace(input.Tracking))
	if qtyCmd > 0 {
		set(schema.Achats.QuantiteCommandee, strconv.Itoa(qtyCmd))
	}
	if qtyRec > 0 {
		set(schema.Achats.QuantiteRecue, strconv.Itoa(qtyRec))
	}
	set(schema.Achats.PrixUnitaireTTC, table.FormatDecimal(unit))
	set(schema.Achats.FraisColissage, table.FormatDecimal(frais))
	set(schema.Achats.FraisLavage, table.FormatDecimal(lavage))
	set(schema.Achats.TotalTTC, table.FormatDecimal(total))
	if t, ok := datefmt.Parse(dateAchat); ok {
		set(schema.Achats.Mois, schema.MonthNamesFR[int(t.Month())-1])
		set(schema.Achats.MoisNum, strconv.Itoa(int(t.Month())))
	}
	if delai := datefmt.DaysBetween(dateAchat, livraison); delai > 0 {
		set(schema.Achats.DelaiLivraison, strconv.Itoa(delai))
	}

	c.achats.Append(row)
	c.purchaseByID[idKey(id)] = row
	c.cache.OnPurchaseAdded(reference, total, decimal.NewFromInt(int64(qtyCmd)))

	c.log.Debug().Str("id", id).Str("reference", reference).Msg("achat créé")
	return row, nil
}

// PrepareStockFromPurchase sella la fecha de mise en stock del achat (evento
// único e inmutable) y crea exactamente quantité-reçue piezas, cada una con
// un sufijo de SKU recién asignado. Todas las comprobaciones preceden a la
// primera fila creada: o se crean todas o ninguna.
func (c *Coordinator) PrepareStockFromPurchase(purchaseID, readyDate string) ([]table.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	purchase, ok := c.purchaseByID[idKey(purchaseID)]
	if !ok {
		return nil, fmt.Errorf("%w: achat %s", domain.ErrPurchaseNotFound, purchaseID)
	}
	if hasReadyDate(c.achats.Value(purchase, schema.Achats.DateMiseEnStock)) {
		return nil, fmt.Errorf("%w: achat %s", domain.ErrAlreadyPrepared, purchaseID)
	}
	qty := table.IntOrZero(c.achats.Value(purchase, schema.Achats.QuantiteRecue))
	if qty <= 0 {
		return nil, fmt.Errorf("%w: achat %s", domain.ErrNoQuantity, purchaseID)
	}

	ready := datefmt.Normalize(readyDate)
	if ready == "" {
		ready = datefmt.Today()
	}

	base := c.achats.Value(purchase, schema.Achats.Reference)
	if base == "" {
		base = sku.BuildBase(
			c.achats.Value(purchase, schema.Achats.Article),
			c.achats.Value(purchase, schema.Achats.Marque),
			c.achats.Value(purchase, schema.Achats.Genre),
		)
		c.achats.SetValue(purchase, schema.Achats.Reference, base)
		// El achat se indexó sin référence: sus totales entran ahora
		// bajo la base recién derivada.
		c.cache.OnPurchaseAdded(
			base,
			table.ParseDecimal(c.achats.Value(purchase, schema.Achats.TotalTTC)),
			decimal.NewFromInt(int64(table.IntOrZero(c.achats.Value(purchase, schema.Achats.QuantiteCommandee)))),
		)
	}

	// Sello único: la fecha queda también en la columna combinada legacy
	// para los consumidores que todavía leen ese nombre.
	c.achats.SetValue(purchase, schema.Achats.DateMiseEnStock, ready)
	c.achats.SetValue(purchase, schema.Achats.PretStock, ready)

	idValue := c.achats.Value(purchase, schema.Achats.ID)
	libelle := c.achats.Value(purchase, schema.Achats.Article)
	marque := c.achats.Value(purchase, schema.Achats.Marque)
	livraison := c.achats.Value(purchase, schema.Achats.DateLivraison)

	created := make([]table.Row, 0, qty)
	for _, suffix := range c.suffixes.NextBatch(base, qty) {
		unit := table.Row{}
		skuValue := sku.Format(base, suffix)
		c.stock.SetValue(unit, schema.Stock.ID, idValue)
		c.stock.SetValue(unit, schema.Stock.SKU, skuValue)
		c.stock.SetValue(unit, schema.Stock.Reference, base)
		c.stock.SetValue(unit, schema.Stock.Libelle, libelle)
		c.stock.SetValue(unit, schema.Stock.Marque, marque)
		c.stock.SetValue(unit, schema.Stock.DateLivraison, livraison)
		c.stock.SetValue(unit, schema.Stock.DateMiseEnStock, ready)
		c.stock.Append(unit)
		c.indexStockUnit(skuValue, unit)
		c.cache.OnStockAdded(base, decimal.Zero, false)
		created = append(created, unit)
	}

	c.log.Info().Str("achat", purchaseID).Str("base", base).Int("pieces", qty).Msg("mise en stock")
	return created, nil
}

// TransferToStock alta manual de una pieza suelta con SKU, precio, lot y
// taille indicados por el usuario.
func (c *Coordinator) TransferToStock(input StockInput) (table.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	purchase, ok := c.purchaseByID[idKey(input.PurchaseID)]
	if !ok {
		return nil, fmt.Errorf("%w: achat %s", domain.ErrPurchaseNotFound, input.PurchaseID)
	}

	skuValue := strings.TrimSpace(input.SKU)
	price := table.ParseDecimal(input.PrixVente)
	base := sku.Base(skuValue)

	unit := table.Row{}
	c.stock.SetValue(unit, schema.Stock.ID, c.achats.Value(purchase, schema.Achats.ID))
	c.stock.SetValue(unit, schema.Stock.SKU, skuValue)
	c.stock.SetValue(unit, schema.Stock.Reference, base)
	c.stock.SetValue(unit, schema.Stock.Libelle, c.achats.Value(purchase, schema.Achats.Article))
	c.stock.SetValue(unit, schema.Stock.Marque, c.achats.Value(purchase, schema.Achats.Marque))
	c.stock.SetValue(unit, schema.Stock.PrixVente, table.FormatDecimal(price))
	c.stock.SetValue(unit, schema.Stock.Lot, strings.TrimSpace(input.Lot))
	c.stock.SetValue(unit, schema.Stock.Taille, strings.TrimSpace(input.Taille))
	c.stock.SetValue(unit, schema.Stock.DateLivraison, c.achats.Value(purchase, schema.Achats.DateLivraison))
	c.stock.SetValue(unit, schema.Stock.DateMiseEnStock, datefmt.Today())

	c.stock.Append(unit)
	c.indexStockUnit(skuValue, unit)
	// El sufijo manual cuenta para el asignador: los lotes siguientes de la
	// misma base no deben reutilizarlo.
	c.suffixes.Observe(skuValue)
	c.cache.OnStockAdded(base, price, false)

	c.log.Debug().Str("sku", skuValue).Msg("pièce transférée au stock")
	return unit, nil
}

// RegisterSale marca la pieza como vendida y registra la venta. Una segunda
// venta del mismo SKU es una corrección de precio: actualiza la fila de
// Ventes existente y su fila de Compta en vez de duplicarlas, y la cache
// aplica solo el delta.
func (c *Coordinator) RegisterSale(input SaleInput) (table.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	skuValue := strings.TrimSpace(input.SKU)
	unit, ok := c.stockBySKU[skuValue]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSKUNotFound, skuValue)
	}

	saleDate := datefmt.Normalize(input.DateVente)
	if saleDate == "" {
		saleDate = datefmt.Today()
	}
	price := table.ParseDecimal(input.PrixVente)
	fee := table.ParseDecimal(input.FraisColissage)
	wasSold := hasReadyDate(c.stock.Value(unit, schema.Stock.Vendu))
	prevStockPrice := table.ParseDecimal(c.stock.Value(unit, schema.Stock.PrixVente))

	c.stock.SetValue(unit, schema.Stock.Vendu, saleDate)
	c.stock.SetValue(unit, schema.Stock.PrixVente, table.FormatDecimal(price))

	if entry, exists := c.saleBySKU[skuValue]; wasSold && exists {
		prevPrice := table.ParseDecimal(c.ventes.Value(entry.sale, schema.Ventes.PrixVente))
		prevFee := table.ParseDecimal(c.ventes.Value(entry.sale, schema.Ventes.FraisColissage))
		c.ventes.SetValue(entry.sale, schema.Ventes.DateVente, saleDate)
		c.ventes.SetValue(entry.sale, schema.Ventes.PrixVente, table.FormatDecimal(price))
		c.ventes.SetValue(entry.sale, schema.Ventes.FraisColissage, table.FormatDecimal(fee))
		if entry.ledger != nil {
			c.fillLedger(entry.ledger, c.ventes.Value(entry.sale, schema.Ventes.ID), entry.sale, price, fee)
		}
		c.cache.OnSaleCorrected(prevPrice, prevFee, price, fee)
		c.log.Info().Str("sku", skuValue).Msg("vente corrigée")
		return entry.sale, nil
	}

	c.maxSaleID++
	libelle := c.stock.Value(unit, schema.Stock.Libelle)
	sale := table.Row{}
	c.ventes.SetValue(sale, schema.Ventes.ID, strconv.Itoa(c.maxSaleID))
	c.ventes.SetValue(sale, schema.Ventes.DateVente, saleDate)
	c.ventes.SetValue(sale, schema.Ventes.Article, libelle)
	c.ventes.SetValue(sale, schema.Ventes.SKU, skuValue)
	c.ventes.SetValue(sale, schema.Ventes.PrixVente, table.FormatDecimal(price))
	c.ventes.SetValue(sale, schema.Ventes.FraisColissage, table.FormatDecimal(fee))
	c.ventes.SetValue(sale, schema.Ventes.Taille, firstNonEmpty(input.Taille, c.stock.Value(unit, schema.Stock.Taille)))
	c.ventes.SetValue(sale, schema.Ventes.Lot, firstNonEmpty(input.Lot, c.stock.Value(unit, schema.Stock.Lot)))
	c.ventes.Append(sale)

	entry := &saleEntry{sale: sale}
	if len(c.compta.Headers()) > 0 {
		ledger := table.Row{}
		c.fillLedger(ledger, strconv.Itoa(c.maxSaleID), sale, price, fee)
		c.compta.Append(ledger)
		entry.ledger = ledger
	}
	c.saleBySKU[skuValue] = entry

	if wasSold {
		// Pieza importada ya vendida sin fila de Ventes: la venta nueva solo
		// alimenta los agregados de venta, el stock disponible no cambia.
		c.cache.OnSaleRecorded(price, fee)
	} else {
		c.cache.OnStockSold(sku.Base(skuValue), prevStockPrice, price, fee)
	}

	c.log.Info().Str("sku", skuValue).Str("prix", table.FormatDecimal(price)).Msg("vente enregistrée")
	return sale, nil
}

// RegisterReturn anota el retour en la fila de venta y devuelve la pieza al
// stock disponible. La fila de Ventes persiste: los KPI de venta no cambian.
func (c *Coordinator) RegisterReturn(skuValue, note string) (table.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	skuValue = strings.TrimSpace(skuValue)
	entry, ok := c.saleBySKU[skuValue]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSaleNotFound, skuValue)
	}
	if strings.TrimSpace(note) == "" {
		note = "Retour client"
	}
	c.ventes.SetValue(entry.sale, schema.Ventes.Retour, note)

	if unit, exists := c.stockBySKU[skuValue]; exists {
		if hasReadyDate(c.stock.Value(unit, schema.Stock.Vendu)) {
			price := table.ParseDecimal(c.stock.Value(unit, schema.Stock.PrixVente))
			c.stock.SetValue(unit, schema.Stock.Vendu, "")
			c.cache.OnStockReturned(sku.Base(skuValue), price)
		}
	}

	c.log.Info().Str("sku", skuValue).Str("note", note).Msg("retour enregistré")
	return entry.sale, nil
}

// DeletePurchases elimina las filas de Achats indicadas (índices de fila,
// de-duplicados y procesados de atrás hacia delante) y, en cascada, todas
// las piezas de stock cuyo id corresponde a un achat eliminado. Devuelve
// cuántos achats y cuántas piezas se quitaron.
func (c *Coordinator) DeletePurchases(indices []int) (purchasesRemoved, stockRemoved int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[int]bool, len(indices))
	ordered := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < c.achats.Len() && !seen[idx] {
			seen[idx] = true
			ordered = append(ordered, idx)
		}
	}
	// De atrás hacia delante para que los índices restantes sigan siendo válidos.
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j] > ordered[i] {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	removedIDs := make(map[string]bool, len(ordered))
	for _, idx := range ordered {
		row := c.achats.RemoveAt(idx)
		if row == nil {
			continue
		}
		key := idKey(c.achats.Value(row, schema.Achats.ID))
		if key != "" {
			removedIDs[key] = true
			delete(c.purchaseByID, key)
		}
		c.cache.OnPurchaseRemoved(
			c.achats.Value(row, schema.Achats.Reference),
			table.ParseDecimal(c.achats.Value(row, schema.Achats.TotalTTC)),
			decimal.NewFromInt(int64(table.IntOrZero(c.achats.Value(row, schema.Achats.QuantiteCommandee)))),
		)
		purchasesRemoved++
	}

	if len(removedIDs) == 0 {
		return purchasesRemoved, 0
	}

	for i := c.stock.Len() - 1; i >= 0; i-- {
		unit := c.stock.Row(i)
		if !removedIDs[idKey(c.stock.Value(unit, schema.Stock.ID))] {
			continue
		}
		c.stock.RemoveAt(i)
		skuValue := c.stock.Value(unit, schema.Stock.SKU)
		if indexed, ok := c.stockBySKU[skuValue]; ok && sameRow(indexed, unit) {
			delete(c.stockBySKU, skuValue)
		}
		c.cache.OnStockRemoved(
			c.stockBase(unit),
			table.ParseDecimal(c.stock.Value(unit, schema.Stock.PrixVente)),
			hasReadyDate(c.stock.Value(unit, schema.Stock.Vendu)),
		)
		stockRemoved++
	}

	c.log.Info().Int("achats", purchasesRemoved).Int("pieces", stockRemoved).Msg("achats supprimés")
	return purchasesRemoved, stockRemoved
}

// MergeStock fusiona piezas importadas en la tabla de stock con la función
// de fusión dada y reconstruye índices y cache en la misma sección crítica,
// de modo que ninguna lectura vea el stock fusionado con índices viejos.
func (c *Coordinator) MergeStock(merge func(dest *table.Table)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	merge(c.stock)
	c.rebuildLocked()
}

// RebuildIndexes reconstruye índices, contadores y cache re-escaneando las
// cuatro tablas. Es la única pasada O(n) permitida: se usa al construir el
// coordinador y tras reemplazar los datos en bloque (import completo).
func (c *Coordinator) RebuildIndexes() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebuildLocked()
}

func (c *Coordinator) rebuildLocked() {
	c.purchaseByID = make(map[string]table.Row, c.achats.Len())
	c.stockBySKU = make(map[string]table.Row, c.stock.Len())
	c.saleBySKU = make(map[string]*saleEntry, c.ventes.Len())
	c.maxPurchaseID = 0
	c.maxSaleID = 0
	c.suffixes.Reset()
	c.cache.Reset()

	for _, row := range c.achats.Rows() {
		idValue := c.achats.Value(row, schema.Achats.ID)
		if n, ok := table.ParseInt(idValue); ok && n > c.maxPurchaseID {
			c.maxPurchaseID = n
		}
		if key := idKey(idValue); key != "" {
			c.purchaseByID[key] = row
		}
		c.cache.OnPurchaseAdded(
			c.achats.Value(row, schema.Achats.Reference),
			table.ParseDecimal(c.achats.Value(row, schema.Achats.TotalTTC)),
			decimal.NewFromInt(int64(table.IntOrZero(c.achats.Value(row, schema.Achats.QuantiteCommandee)))),
		)
	}

	for _, unit := range c.stock.Rows() {
		skuValue := c.stock.Value(unit, schema.Stock.SKU)
		c.indexStockUnit(skuValue, unit)
		c.suffixes.Observe(skuValue)
		c.cache.OnStockAdded(
			c.stockBase(unit),
			table.ParseDecimal(c.stock.Value(unit, schema.Stock.PrixVente)),
			hasReadyDate(c.stock.Value(unit, schema.Stock.Vendu)),
		)
	}

	ledgerByID := make(map[string]table.Row, c.compta.Len())
	for _, ledger := range c.compta.Rows() {
		ledgerByID[idKey(c.compta.Value(ledger, schema.Compta.ID))] = ledger
	}
	for _, sale := range c.ventes.Rows() {
		idValue := c.ventes.Value(sale, schema.Ventes.ID)
		if n, ok := table.ParseInt(idValue); ok && n > c.maxSaleID {
			c.maxSaleID = n
		}
		skuValue := c.ventes.Value(sale, schema.Ventes.SKU)
		if skuValue != "" {
			// La última fila gana: es la venta vigente del SKU.
			c.saleBySKU[skuValue] = &saleEntry{sale: sale, ledger: ledgerByID[idKey(idValue)]}
		}
		c.cache.OnSaleRecorded(
			table.ParseDecimal(c.ventes.Value(sale, schema.Ventes.PrixVente)),
			table.ParseDecimal(c.ventes.Value(sale, schema.Ventes.FraisColissage)),
		)
	}

	c.log.Debug().
		Int("achats", c.achats.Len()).
		Int("stock", c.stock.Len()).
		Int("ventes", c.ventes.Len()).
		Msg("index reconstruits")
}

// fillLedger escribe la fila de Compta derivada de una venta: marge brute,
// coefficient de marge y 1 pièce.
func (c *Coordinator) fillLedger(ledger table.Row, saleID string, sale table.Row, price, fee decimal.Decimal) {
	margin := price.Sub(fee)
	coeff := decimal.Zero
	if !price.IsZero() {
		coeff = margin.Div(price)
	}
	c.compta.SetValue(ledger, schema.Compta.ID, saleID)
	c.compta.SetValue(ledger, schema.Compta.SKU, c.ventes.Value(sale, schema.Ventes.SKU))
	c.compta.SetValue(ledger, schema.Compta.Libelles, c.ventes.Value(sale, schema.Ventes.Article))
	c.compta.SetValue(ledger, schema.Compta.DateVente, c.ventes.Value(sale, schema.Ventes.DateVente))
	c.compta.SetValue(ledger, schema.Compta.MargeBrute, table.FormatDecimal(margin))
	c.compta.SetValue(ledger, schema.Compta.CoeffMarge, table.FormatDecimal(coeff))
	c.compta.SetValue(ledger, schema.Compta.NbrPcsVendu, "1")
}

// indexStockUnit indexa la pieza por SKU. Gana la primera aparición, igual
// que el barrido secuencial del que estos índices son la versión O(1).
func (c *Coordinator) indexStockUnit(skuValue string, unit table.Row) {
	if skuValue == "" {
		return
	}
	if _, exists := c.stockBySKU[skuValue]; !exists {
		c.stockBySKU[skuValue] = unit
	}
}

// stockBase référence de base de una pieza: la del SKU, o la columna
// RÉFÉRENCE si la pieza no tiene SKU (filas importadas de workbooks viejos).
// Alta y baja en cache deben usar la misma clave.
func (c *Coordinator) stockBase(unit table.Row) string {
	if base := sku.Base(c.stock.Value(unit, schema.Stock.SKU)); base != "" {
		return base
	}
	return c.stock.Value(unit, schema.Stock.Reference)
}

// idKey normaliza un valor de columna ID para usarlo como clave: "3", "3.0"
// y " 3 " comparten clave.
func idKey(value string) string {
	if n, ok := table.ParseInt(value); ok {
		return strconv.Itoa(n)
	}
	return strings.TrimSpace(value)
}

// hasReadyDate decide si un valor de celda cuenta como fecha/flag presente.
// Los workbooks legacy guardan "FALSE" literal en las columnas combinadas.
func hasReadyDate(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && !strings.EqualFold(trimmed, "false")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func sameRow(a, b table.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
