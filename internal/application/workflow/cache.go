package workflow

import "github.com/shopspring/decimal"

// refTotal acumulados de compra por référence de base: Σ TOTAL TTC y
// Σ quantité commandée. El precio unitario medio se deriva perezosamente en
// Snapshot (total/qty), nunca se almacena dividido.
type refTotal struct {
	total decimal.Decimal
	qty   decimal.Decimal
}

// Cache mantiene los agregados del inventario de forma incremental: cada
// mutación del coordinador aplica su delta aquí en vez de re-escanear las
// tablas. Snapshot es O(1) respecto al tamaño de las tablas.
//
// No lleva lock propio: el mutex del coordinador cubre cada operación entera
// (filas + índices + cache como unidad atómica).
type Cache struct {
	stockCount int
	stockValue decimal.Decimal
	baseCounts map[string]int

	refTotals map[string]refTotal

	soldCount int
	soldValue decimal.Decimal
	marginSum decimal.Decimal
}

// NewCache crea una cache vacía.
func NewCache() *Cache {
	return &Cache{
		baseCounts: make(map[string]int),
		refTotals:  make(map[string]refTotal),
	}
}

// Reset vacía todos los acumulados (antes de un rebuild completo).
func (c *Cache) Reset() {
	*c = *NewCache()
}

// OnPurchaseAdded registra los totales de compra de una référence.
func (c *Cache) OnPurchaseAdded(reference string, totalTTC, qtyOrdered decimal.Decimal) {
	if reference == "" {
		return
	}
	rt := c.refTotals[reference]
	rt.total = rt.total.Add(totalTTC)
	rt.qty = rt.qty.Add(qtyOrdered)
	c.refTotals[reference] = rt
}

// OnPurchaseRemoved deshace OnPurchaseAdded. Una cantidad acumulada que cae
// a cero o menos elimina la entrada entera: así Snapshot nunca divide por
// cero ni ve restos negativos.
func (c *Cache) OnPurchaseRemoved(reference string, totalTTC, qtyOrdered decimal.Decimal) {
	if reference == "" {
		return
	}
	rt, ok := c.refTotals[reference]
	if !ok {
		return
	}
	rt.total = rt.total.Sub(totalTTC)
	rt.qty = rt.qty.Sub(qtyOrdered)
	if rt.qty.LessThanOrEqual(decimal.Zero) {
		delete(c.refTotals, reference)
		return
	}
	c.refTotals[reference] = rt
}

// OnStockAdded incorpora una pieza nueva. Las piezas que llegan ya vendidas
// (import de un workbook histórico) no cuentan en el stock disponible.
func (c *Cache) OnStockAdded(base string, price decimal.Decimal, sold bool) {
	if sold {
		return
	}
	c.stockCount++
	c.stockValue = c.stockValue.Add(price)
	if base != "" {
		c.baseCounts[base]++
	}
}

// OnStockRemoved deshace OnStockAdded para una pieza borrada. Las piezas
// vendidas no estaban en los agregados de stock, así que no tocan nada
// (las sumas de venta siguen a las filas de Ventes, que persisten).
func (c *Cache) OnStockRemoved(base string, price decimal.Decimal, sold bool) {
	if sold {
		return
	}
	c.stockCount--
	c.stockValue = c.stockValue.Sub(price)
	if base != "" {
		if c.baseCounts[base] <= 1 {
			delete(c.baseCounts, base)
		} else {
			c.baseCounts[base]--
		}
	}
}

// OnSaleRecorded incorpora una fila de Ventes a los agregados de venta.
func (c *Cache) OnSaleRecorded(salePrice, fee decimal.Decimal) {
	c.soldCount++
	c.soldValue = c.soldValue.Add(salePrice)
	c.marginSum = c.marginSum.Add(salePrice.Sub(fee))
}

// OnStockSold primera venta de una pieza: sale del stock disponible y entra
// en los agregados de venta. stockPrice es el precio que la pieza aportaba
// al valor de stock (puede diferir del precio de venta final).
func (c *Cache) OnStockSold(base string, stockPrice, salePrice, fee decimal.Decimal) {
	c.OnStockRemoved(base, stockPrice, false)
	c.OnSaleRecorded(salePrice, fee)
}

// OnSaleCorrected re-venta de una pieza ya vendida: corrección de precio,
// no venta nueva. Solo ajusta los agregados de venta por el delta.
func (c *Cache) OnSaleCorrected(prevPrice, prevFee, newPrice, newFee decimal.Decimal) {
	c.soldValue = c.soldValue.Sub(prevPrice).Add(newPrice)
	c.marginSum = c.marginSum.Sub(prevPrice.Sub(prevFee)).Add(newPrice.Sub(newFee))
}

// OnStockReturned una pieza vendida vuelve al stock disponible. Los
// agregados de venta no cambian: la fila de Ventes persiste anotada.
func (c *Cache) OnStockReturned(base string, price decimal.Decimal) {
	c.OnStockAdded(base, price, false)
}

// InventorySnapshot vista de solo lectura de los KPI del inventario.
type InventorySnapshot struct {
	StockPieces         int
	StockValue          decimal.Decimal
	UniqueReferences    int
	ReferenceStockValue decimal.Decimal
	SoldPieces          int
	SoldValue           decimal.Decimal
	AverageMargin       *decimal.Decimal // nil cuando no hay ventas
}

// Snapshot deriva los KPI de los acumulados, sin tocar las tablas.
func (c *Cache) Snapshot() InventorySnapshot {
	refValue := decimal.Zero
	for base, count := range c.baseCounts {
		rt, ok := c.refTotals[base]
		if !ok || !rt.qty.IsPositive() {
			continue
		}
		unit := rt.total.Div(rt.qty)
		refValue = refValue.Add(unit.Mul(decimal.NewFromInt(int64(count))))
	}

	snap := InventorySnapshot{
		StockPieces:         c.stockCount,
		StockValue:          c.stockValue.Round(2),
		UniqueReferences:    len(c.baseCounts),
		ReferenceStockValue: refValue.Round(2),
		SoldPieces:          c.soldCount,
		SoldValue:           c.soldValue.Round(2),
	}
	if c.soldCount > 0 {
		avg := c.marginSum.Div(decimal.NewFromInt(int64(c.soldCount))).Round(2)
		snap.AverageMargin = &avg
	}
	return snap
}
