package workflow

import (
	"strconv"
	"strings"

	"github.com/jhoicas/vintage-erp/internal/domain/schema"
	"github.com/jhoicas/vintage-erp/internal/domain/table"
	"github.com/jhoicas/vintage-erp/pkg/datefmt"
	"github.com/jhoicas/vintage-erp/pkg/logger"
)

// PrepareLoadedTables normaliza las tablas recién cargadas antes de
// entregárselas al coordinador: cabeceras por defecto para las tablas
// vacías, ids canónicos ("3.0" → "3"), fechas en formato de pantalla y
// reconciliación de la fecha de mise en stock desde las columnas legacy.
func PrepareLoadedTables(achats, stock, ventes, compta *table.Table, log *logger.Logger) {
	log = log.Component("bootstrap")

	ensureHeaders(achats, schema.AchatsHeaders)
	ensureHeaders(stock, schema.StockHeaders)
	ensureHeaders(ventes, schema.VentesHeaders)
	ensureHeaders(compta, schema.ComptaHeaders)

	for _, row := range achats.Rows() {
		normalizeID(achats, row, schema.Achats.ID)
		normalizeDate(achats, row, schema.Achats.DateAchat)
		normalizeDate(achats, row, schema.Achats.DateLivraison)
		reconcileReadyDate(achats, row)
	}
	for _, unit := range stock.Rows() {
		normalizeID(stock, unit, schema.Stock.ID)
		normalizeDate(stock, unit, schema.Stock.DateLivraison)
		normalizeDate(stock, unit, schema.Stock.DateMiseEnStock)
	}
	for _, sale := range ventes.Rows() {
		normalizeID(ventes, sale, schema.Ventes.ID)
		normalizeDate(ventes, sale, schema.Ventes.DateVente)
	}
	for _, ledger := range compta.Rows() {
		normalizeID(compta, ledger, schema.Compta.ID)
		normalizeDate(compta, ledger, schema.Compta.DateVente)
	}

	log.Debug().
		Int("achats", achats.Len()).
		Int("stock", stock.Len()).
		Int("ventes", ventes.Len()).
		Int("compta", compta.Len()).
		Msg("tables préparées")
}

func ensureHeaders(t *table.Table, defaults []string) {
	if len(t.Headers()) == 0 {
		t.SetHeaders(defaults)
	}
}

// normalizeID reescribe el id con su forma canónica cuando es numérico. Los
// exports de hojas de cálculo suelen degradar enteros a "3.0".
func normalizeID(t *table.Table, row table.Row, field table.Field) {
	raw := t.Value(row, field)
	if raw == "" {
		return
	}
	if n, ok := table.ParseInt(raw); ok {
		t.SetValue(row, field, strconv.Itoa(n))
	}
}

func normalizeDate(t *table.Table, row table.Row, field table.Field) {
	raw := t.Value(row, field)
	if raw == "" {
		return
	}
	t.SetValue(row, field, datefmt.Normalize(raw))
}

// reconcileReadyDate consolida la fecha de mise en stock de un achat. Los
// workbooks antiguos la guardaban en una columna combinada con el flag
// "prêt" y a veces con el literal FALSE; la columna dedicada gana si existe,
// si no la legacy rellena la dedicada.
func reconcileReadyDate(t *table.Table, row table.Row) {
	dedicated := strings.TrimSpace(t.Value(row, schema.Achats.DateMiseEnStock))
	legacy := strings.TrimSpace(t.Value(row, schema.Achats.PretStock))

	value := dedicated
	if !hasReadyDate(value) {
		value = legacy
	}
	if !hasReadyDate(value) {
		if dedicated != "" || legacy != "" {
			t.SetValue(row, schema.Achats.DateMiseEnStock, "")
			t.SetValue(row, schema.Achats.PretStock, "")
		}
		return
	}
	value = datefmt.Normalize(value)
	t.SetValue(row, schema.Achats.DateMiseEnStock, value)
	t.SetValue(row, schema.Achats.PretStock, value)
}
