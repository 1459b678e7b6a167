// Package stockimport fusiona piezas de stock procedentes de un workbook
// externo con la tabla de stock vigente. La fusión es idempotente: re-importar
// el mismo archivo no duplica ninguna fila.
package stockimport

import (
	"strconv"
	"strings"

	"github.com/jhoicas/vintage-erp/internal/domain/schema"
	"github.com/jhoicas/vintage-erp/internal/domain/table"
	"github.com/jhoicas/vintage-erp/pkg/logger"
)

// Result resumen de una fusión.
type Result struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Merge añade a dest las filas de incoming cuya firma (id, sku) no está ya
// presente. Las firmas se comparan normalizadas: "3.0" y "3" son el mismo
// id, y el sku ignora mayúsculas y espacios. Las filas entrantes sin id ni
// sku se descartan.
func Merge(dest *table.Table, incoming *table.Table, log *logger.Logger) Result {
	log = log.Component("stockimport")

	existing := make(map[string]bool, dest.Len())
	for _, row := range dest.Rows() {
		if sig, ok := signature(dest, row); ok {
			existing[sig] = true
		}
	}

	var res Result
	for _, row := range incoming.Rows() {
		sig, ok := signature(incoming, row)
		if !ok || existing[sig] {
			res.Skipped++
			continue
		}
		existing[sig] = true
		dest.Append(copyInto(dest, incoming, row))
		res.Added++
	}

	log.Info().Int("added", res.Added).Int("skipped", res.Skipped).Msg("fusion du stock terminée")
	return res
}

// signature construye la clave (id, sku) normalizada de una pieza.
func signature(t *table.Table, row table.Row) (string, bool) {
	id := normalizeID(t.Value(row, schema.Stock.ID))
	skuValue := strings.ToUpper(strings.TrimSpace(t.Value(row, schema.Stock.SKU)))
	if id == "" && skuValue == "" {
		return "", false
	}
	return id + "\x00" + skuValue, true
}

func normalizeID(raw string) string {
	if n, ok := table.ParseInt(raw); ok {
		return strconv.Itoa(n)
	}
	return strings.TrimSpace(raw)
}

// copyInto re-proyecta la fila entrante sobre los campos lógicos conocidos,
// de modo que una hoja con variantes de cabecera viejas aterrice en las
// cabeceras de la tabla destino.
func copyInto(dest *table.Table, src *table.Table, row table.Row) table.Row {
	out := table.Row{}
	fields := []table.Field{
		schema.Stock.ID, schema.Stock.SKU, schema.Stock.Reference,
		schema.Stock.Libelle, schema.Stock.Marque, schema.Stock.PrixVente,
		schema.Stock.Taille, schema.Stock.Lot, schema.Stock.DateLivraison,
		schema.Stock.DateMiseEnStock, schema.Stock.MisEnLigne,
		schema.Stock.Publie, schema.Stock.Vendu,
	}
	for _, f := range fields {
		if v := src.Value(row, f); v != "" {
			dest.SetValue(out, f, v)
		}
	}
	if id := normalizeID(dest.Value(out, schema.Stock.ID)); id != "" {
		dest.SetValue(out, schema.Stock.ID, id)
	}
	return out
}
