package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vintage-erp/internal/application/workflow"
	"github.com/jhoicas/vintage-erp/internal/domain"
	"github.com/jhoicas/vintage-erp/internal/domain/schema"
	"github.com/jhoicas/vintage-erp/internal/domain/table"
	"github.com/jhoicas/vintage-erp/pkg/logger"
)

func newCoordinator(t *testing.T) *workflow.Coordinator {
	t.Helper()
	return workflow.NewCoordinator(
		table.New(schema.AchatsHeaders),
		table.New(schema.StockHeaders),
		table.New(schema.VentesHeaders),
		table.New(schema.ComptaHeaders),
		logger.Nop(),
	)
}

func createPurchase(t *testing.T, c *workflow.Coordinator, qty string) table.Row {
	t.Helper()
	row, err := c.CreatePurchase(workflow.PurchaseInput{
		Article:       "Jean",
		Marque:        "Levis",
		Genre:         "Homme",
		QuantiteRecue: qty,
		PrixUnitaire:  "10",
	})
	require.NoError(t, err)
	return row
}

// requireConsistent verifica que la cache incremental y una reconstrucción
// completa producen el mismo snapshot.
func requireConsistent(t *testing.T, c *workflow.Coordinator) {
	t.Helper()
	before := c.Snapshot()
	c.RebuildIndexes()
	after := c.Snapshot()

	assert.Equal(t, before.StockPieces, after.StockPieces)
	assert.True(t, before.StockValue.Equal(after.StockValue),
		"stock_value: cache %s vs rebuild %s", before.StockValue, after.StockValue)
	assert.Equal(t, before.UniqueReferences, after.UniqueReferences)
	assert.True(t, before.ReferenceStockValue.Equal(after.ReferenceStockValue),
		"reference_stock_value: cache %s vs rebuild %s", before.ReferenceStockValue, after.ReferenceStockValue)
	assert.Equal(t, before.SoldPieces, after.SoldPieces)
	assert.True(t, before.SoldValue.Equal(after.SoldValue))
	if before.AverageMargin == nil {
		assert.Nil(t, after.AverageMargin)
	} else {
		require.NotNil(t, after.AverageMargin)
		assert.True(t, before.AverageMargin.Equal(*after.AverageMargin))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Achats
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchase_CamposDerivados(t *testing.T) {
	c := newCoordinator(t)
	row, err := c.CreatePurchase(workflow.PurchaseInput{
		Article:           "Jean",
		Marque:            "Levis",
		Genre:             "Homme",
		DateAchat:         "05/03/2026",
		DateLivraison:     "12/03/2026",
		QuantiteCommandee: "4",
		QuantiteRecue:     "3",
		PrixUnitaire:      "10",
		FraisColissage:    "5",
	})
	require.NoError(t, err)

	assert.Equal(t, "1", row["ID"])
	assert.Equal(t, "JLH", row["REFERENCE"])
	assert.Equal(t, "35", row["TOTAL TTC"], "total = 3 × 10 + 5")
	assert.Equal(t, "Mars", row["MOIS"])
	assert.Equal(t, "3", row["MOIS NUM"])
	assert.Equal(t, "7", row["DELAI DE LIVRAISON"])
}

func TestCreatePurchase_PrecioUnitarioDerivadoDelTotal(t *testing.T) {
	c := newCoordinator(t)
	row, err := c.CreatePurchase(workflow.PurchaseInput{
		Article:       "Jean",
		Marque:        "Levis",
		Genre:         "Homme",
		QuantiteRecue: "3",
		PrixTotal:     "100",
	})
	require.NoError(t, err)
	assert.Equal(t, "33.33", row["PRIX UNITAIRE TTC"])
	assert.Equal(t, "100", row["TOTAL TTC"])
}

func TestCreatePurchase_ReferenciaExplicitaGana(t *testing.T) {
	c := newCoordinator(t)
	row, err := c.CreatePurchase(workflow.PurchaseInput{
		Article: "Jean", Marque: "Levis", Genre: "Homme", Reference: "CUSTOM",
	})
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM", row["REFERENCE"])
}

func TestCreatePurchase_IdsMonotonos(t *testing.T) {
	c := newCoordinator(t)
	createPurchase(t, c, "1")
	createPurchase(t, c, "1")

	removed, _ := c.DeletePurchases([]int{1})
	assert.Equal(t, 1, removed)

	// El id 2 no se reutiliza aunque su achat se haya borrado.
	row := createPurchase(t, c, "1")
	assert.Equal(t, "3", row["ID"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Mise en stock
// ──────────────────────────────────────────────────────────────────────────────

func TestPrepareStock_CreaUnaPiezaPorUnidadRecibida(t *testing.T) {
	c := newCoordinator(t)
	createPurchase(t, c, "3")

	created, err := c.PrepareStockFromPurchase("1", "10/03/2026")
	require.NoError(t, err)
	require.Len(t, created, 3)

	assert.Equal(t, "JLH-1", created[0]["SKU"])
	assert.Equal(t, "JLH-2", created[1]["SKU"])
	assert.Equal(t, "JLH-3", created[2]["SKU"])
	for _, unit := range created {
		assert.Equal(t, "1", unit["ID"])
		assert.Equal(t, "10/03/2026", unit["DATE DE MISE EN STOCK"])
	}

	snap := c.Snapshot()
	assert.Equal(t, 3, snap.StockPieces)
	assert.Equal(t, 1, snap.UniqueReferences)
	requireConsistent(t, c)
}

func TestPrepareStock_SegundaVezConflicto(t *testing.T) {
	c := newCoordinator(t)
	createPurchase(t, c, "2")

	_, err := c.PrepareStockFromPurchase("1", "")
	require.NoError(t, err)

	_, err = c.PrepareStockFromPurchase("1", "")
	assert.ErrorIs(t, err, domain.ErrAlreadyPrepared)
}

func TestPrepareStock_SinCantidad(t *testing.T) {
	c := newCoordinator(t)
	_, err := c.CreatePurchase(workflow.PurchaseInput{
		Article: "Jean", Marque: "Levis", Genre: "Homme",
	})
	require.NoError(t, err)

	_, err = c.PrepareStockFromPurchase("1", "")
	assert.ErrorIs(t, err, domain.ErrNoQuantity)
}

func TestPrepareStock_AchatInexistente(t *testing.T) {
	c := newCoordinator(t)
	_, err := c.PrepareStockFromPurchase("42", "")
	assert.ErrorIs(t, err, domain.ErrPurchaseNotFound)
}

func TestPrepareStock_IdTolerante(t *testing.T) {
	c := newCoordinator(t)
	createPurchase(t, c, "1")

	// "1.0" y " 1 " apuntan al mismo achat que "1".
	_, err := c.PrepareStockFromPurchase(" 1.0 ", "")
	require.NoError(t, err)
}

func TestPrepareStock_SufijosContinuanTrasVentas(t *testing.T) {
	c := newCoordinator(t)
	createPurchase(t, c, "2")
	_, err := c.PrepareStockFromPurchase("1", "")
	require.NoError(t, err)

	// Segundo lote de la misma référence: los sufijos siguen donde iban.
	createPurchase(t, c, "2")
	created, err := c.PrepareStockFromPurchase("2", "")
	require.NoError(t, err)
	assert.Equal(t, "JLH-3", created[0]["SKU"])
	assert.Equal(t, "JLH-4", created[1]["SKU"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventes y retours
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_ActualizaStockVentesYCompta(t *testing.T) {
	c := newCoordinator(t)
	createPurchase(t, c, "1")
	_, err := c.PrepareStockFromPurchase("1", "")
	require.NoError(t, err)

	sale, err := c.RegisterSale(workflow.SaleInput{
		SKU: "JLH-1", PrixVente: "25", FraisColissage: "5", DateVente: "10/04/2026",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", sale["ID"])
	assert.Equal(t, "25", sale["PRIX VENTE"])

	snap := c.Snapshot()
	assert.Equal(t, 0, snap.StockPieces)
	assert.Equal(t, 1, snap.SoldPieces)
	assert.Equal(t, "25", snap.SoldValue.String())
	require.NotNil(t, snap.AverageMargin)
	assert.Equal(t, "20", snap.AverageMargin.String())

	err = c.WithTables(func(_, stock, ventes, compta *table.Table) error {
		unit := stock.Row(0)
		assert.Equal(t, "10/04/2026", stock.Value(unit, schema.Stock.Vendu))

		require.Equal(t, 1, compta.Len())
		ledger := compta.Row(0)
		assert.Equal(t, "20", compta.Value(ledger, schema.Compta.MargeBrute))
		assert.Equal(t, "0.8", compta.Value(ledger, schema.Compta.CoeffMarge))
		assert.Equal(t, "1", compta.Value(ledger, schema.Compta.NbrPcsVendu))
		return nil
	})
	require.NoError(t, err)
	requireConsistent(t, c)
}

func TestRegisterSale_ReventaEsCorreccion(t *testing.T) {
	c := newCoordinator(t)
	createPurchase(t, c, "1")
	_, err := c.PrepareStockFromPurchase("1", "")
	require.NoError(t, err)

	_, err = c.RegisterSale(workflow.SaleInput{SKU: "JLH-1", PrixVente: "25", FraisColissage: "5"})
	require.NoError(t, err)
	_, err = c.RegisterSale(workflow.SaleInput{SKU: "JLH-1", PrixVente: "30", FraisColissage: "5"})
	require.NoError(t, err)

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.SoldPieces, "la corrección no crea una venta nueva")
	assert.Equal(t, "30", snap.SoldValue.String())

	err = c.WithTables(func(_, _, ventes, compta *table.Table) error {
		require.Equal(t, 1, ventes.Len(), "la fila de Ventes se corrige en sitio")
		assert.Equal(t, "30", ventes.Value(ventes.Row(0), schema.Ventes.PrixVente))
		require.Equal(t, 1, compta.Len())
		assert.Equal(t, "25", compta.Value(compta.Row(0), schema.Compta.MargeBrute), "marge = 30 − 5")
		return nil
	})
	require.NoError(t, err)
	requireConsistent(t, c)
}

func TestRegisterSale_SKUDesconocido(t *testing.T) {
	c := newCoordinator(t)
	_, err := c.RegisterSale(workflow.SaleInput{SKU: "XX-1", PrixVente: "10"})
	assert.ErrorIs(t, err, domain.ErrSKUNotFound)
}

func TestRegisterReturn_VuelveAlStockSinBorrarLaVenta(t *testing.T) {
	c := newCoordinator(t)
	createPurchase(t, c, "1")
	_, err := c.PrepareStockFromPurchase("1", "")
	require.NoError(t, err)
	_, err = c.RegisterSale(workflow.SaleInput{SKU: "JLH-1", PrixVente: "25"})
	require.NoError(t, err)

	sale, err := c.RegisterReturn("JLH-1", "")
	require.NoError(t, err)
	assert.Equal(t, "Retour client", sale["RETOUR"])

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.StockPieces, "la pieza vuelve al stock disponible")
	assert.Equal(t, 1, snap.SoldPieces, "la venta registrada persiste")
	requireConsistent(t, c)
}

func TestRegisterReturn_SinVenta(t *testing.T) {
	c := newCoordinator(t)
	_, err := c.RegisterReturn("JLH-1", "")
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación en cascada
// ──────────────────────────────────────────────────────────────────────────────

func TestDeletePurchases_CascadaExacta(t *testing.T) {
	c := newCoordinator(t)
	createPurchase(t, c, "2") // id 1
	createPurchase(t, c, "1") // id 2
	_, err := c.PrepareStockFromPurchase("1", "")
	require.NoError(t, err)
	_, err = c.PrepareStockFromPurchase("2", "")
	require.NoError(t, err)

	purchases, stock := c.DeletePurchases([]int{0})
	assert.Equal(t, 1, purchases)
	assert.Equal(t, 2, stock, "solo caen las piezas del achat borrado")

	err = c.WithTables(func(achats, stockTbl, _, _ *table.Table) error {
		require.Equal(t, 1, achats.Len())
		assert.Equal(t, "2", achats.Value(achats.Row(0), schema.Achats.ID))
		require.Equal(t, 1, stockTbl.Len())
		assert.Equal(t, "JLH-3", stockTbl.Value(stockTbl.Row(0), schema.Stock.SKU))
		return nil
	})
	require.NoError(t, err)
	requireConsistent(t, c)
}

func TestDeletePurchases_IndicesDuplicadosEInvalidos(t *testing.T) {
	c := newCoordinator(t)
	createPurchase(t, c, "1")

	purchases, stock := c.DeletePurchases([]int{0, 0, 5, -1})
	assert.Equal(t, 1, purchases)
	assert.Equal(t, 0, stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconstrucción desde tablas pre-cargadas
// ──────────────────────────────────────────────────────────────────────────────

func TestNewCoordinator_SiembraDesdeTablasExistentes(t *testing.T) {
	achats := table.New(schema.AchatsHeaders)
	row := table.Row{}
	achats.SetValue(row, schema.Achats.ID, "7")
	achats.SetValue(row, schema.Achats.Reference, "JLH")
	achats.SetValue(row, schema.Achats.QuantiteRecue, "1")
	achats.Append(row)

	stock := table.New(schema.StockHeaders)
	unit := table.Row{}
	stock.SetValue(unit, schema.Stock.ID, "7")
	stock.SetValue(unit, schema.Stock.SKU, "JLH-9")
	stock.SetValue(unit, schema.Stock.PrixVente, "15")
	stock.Append(unit)

	c := workflow.NewCoordinator(achats, stock,
		table.New(schema.VentesHeaders), table.New(schema.ComptaHeaders), logger.Nop())

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.StockPieces)
	assert.Equal(t, "15", snap.StockValue.String())

	// Los contadores arrancan después de lo ya existente.
	created, err := c.CreatePurchase(workflow.PurchaseInput{
		Article: "Jean", Marque: "Levis", Genre: "Homme", QuantiteRecue: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "8", created["ID"])

	units, err := c.PrepareStockFromPurchase("8", "")
	require.NoError(t, err)
	assert.Equal(t, "JLH-10", units[0]["SKU"], "el sufijo continúa tras el máximo observado")
}

func TestPrepareStock_AchatSinReferenciaEntraEnLosAgregados(t *testing.T) {
	achats := table.New(schema.AchatsHeaders)
	row := table.Row{}
	achats.SetValue(row, schema.Achats.ID, "1")
	achats.SetValue(row, schema.Achats.Article, "Jean")
	achats.SetValue(row, schema.Achats.Marque, "Levis")
	achats.SetValue(row, schema.Achats.Genre, "Homme")
	achats.SetValue(row, schema.Achats.QuantiteCommandee, "2")
	achats.SetValue(row, schema.Achats.QuantiteRecue, "2")
	achats.SetValue(row, schema.Achats.TotalTTC, "20")
	achats.Append(row)

	c := workflow.NewCoordinator(achats, table.New(schema.StockHeaders),
		table.New(schema.VentesHeaders), table.New(schema.ComptaHeaders), logger.Nop())

	// La mise en stock deriva la référence que faltaba; los totales de
	// compra deben quedar acumulados bajo esa base sin esperar al rebuild.
	units, err := c.PrepareStockFromPurchase("1", "")
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "JLH", row["REFERENCE"])

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.UniqueReferences)
	assert.Equal(t, "20", snap.ReferenceStockValue.String(), "2 piezas × (20 / 2 commandées)")
	requireConsistent(t, c)
}

func TestDeletePurchases_PiezaSinSKUDescuentaSuReferencia(t *testing.T) {
	achats := table.New(schema.AchatsHeaders)
	row := table.Row{}
	achats.SetValue(row, schema.Achats.ID, "7")
	achats.SetValue(row, schema.Achats.Reference, "AB")
	achats.SetValue(row, schema.Achats.QuantiteCommandee, "1")
	achats.SetValue(row, schema.Achats.TotalTTC, "12")
	achats.Append(row)

	// Pieza importada con RÉFÉRENCE pero sin SKU: cuenta como base "AB".
	stock := table.New(schema.StockHeaders)
	unit := table.Row{}
	stock.SetValue(unit, schema.Stock.ID, "7")
	stock.SetValue(unit, schema.Stock.Reference, "AB")
	stock.SetValue(unit, schema.Stock.PrixVente, "15")
	stock.Append(unit)

	c := workflow.NewCoordinator(achats, stock,
		table.New(schema.VentesHeaders), table.New(schema.ComptaHeaders), logger.Nop())
	require.Equal(t, 1, c.Snapshot().UniqueReferences)

	purchases, pieces := c.DeletePurchases([]int{0})
	assert.Equal(t, 1, purchases)
	assert.Equal(t, 1, pieces)

	snap := c.Snapshot()
	assert.Equal(t, 0, snap.UniqueReferences, "la cascada descuenta también la base tomada de RÉFÉRENCE")
	assert.Equal(t, 0, snap.StockPieces)
	requireConsistent(t, c)
}

func TestRegisterSale_PiezaImportadaYaVendidaSinFilaDeVentes(t *testing.T) {
	stock := table.New(schema.StockHeaders)
	unit := table.Row{}
	stock.SetValue(unit, schema.Stock.SKU, "JLH-1")
	stock.SetValue(unit, schema.Stock.PrixVente, "15")
	stock.SetValue(unit, schema.Stock.Vendu, "01/02/2026")
	stock.Append(unit)

	c := workflow.NewCoordinator(table.New(schema.AchatsHeaders), stock,
		table.New(schema.VentesHeaders), table.New(schema.ComptaHeaders), logger.Nop())
	require.Equal(t, 0, c.Snapshot().StockPieces, "una pieza ya vendida no cuenta como stock")

	// Sin fila de Ventes no hay nada que corregir: la venta crea la fila
	// y solo alimenta los agregados de venta.
	sale, err := c.RegisterSale(workflow.SaleInput{SKU: "JLH-1", PrixVente: "30", FraisColissage: "5"})
	require.NoError(t, err)
	assert.Equal(t, "1", sale["ID"])

	snap := c.Snapshot()
	assert.Equal(t, 0, snap.StockPieces)
	assert.Equal(t, 1, snap.SoldPieces)
	assert.Equal(t, "30", snap.SoldValue.String())
	require.NotNil(t, snap.AverageMargin)
	assert.Equal(t, "25", snap.AverageMargin.String())
	requireConsistent(t, c)
}
