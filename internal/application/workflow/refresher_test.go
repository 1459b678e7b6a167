package workflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vintage-erp/internal/application/workflow"
	"github.com/jhoicas/vintage-erp/internal/domain/schema"
	"github.com/jhoicas/vintage-erp/internal/domain/table"
	"github.com/jhoicas/vintage-erp/pkg/logger"
)

func TestRefresher_ReconstruyeEnSegundoPlano(t *testing.T) {
	achats := table.New(schema.AchatsHeaders)
	stock := table.New(schema.StockHeaders)
	c := workflow.NewCoordinator(achats, stock,
		table.New(schema.VentesHeaders), table.New(schema.ComptaHeaders), logger.Nop())

	// Alta fuera del coordinador: solo un rebuild la hace visible en los KPI.
	unit := table.Row{}
	stock.SetValue(unit, schema.Stock.SKU, "JLH-1")
	stock.SetValue(unit, schema.Stock.PrixVente, "15")
	stock.Append(unit)
	require.Equal(t, 0, c.Snapshot().StockPieces)

	r := workflow.NewRefresher(c, logger.Nop())
	r.Start(context.Background())
	defer r.Stop()

	r.Trigger()
	require.Eventually(t, func() bool {
		return c.Snapshot().StockPieces == 1
	}, 2*time.Second, 10*time.Millisecond, "el rebuild debe aplicarse en segundo plano")
}

func TestRefresher_TriggerNoBloquea(t *testing.T) {
	c := newCoordinator(t)
	r := workflow.NewRefresher(c, logger.Nop())
	r.Start(context.Background())
	defer r.Stop()

	// Ráfaga de triggers: se colapsan sin bloquear al llamante.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			r.Trigger()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Trigger no debe bloquear")
	}
}

func TestRefresher_CancelPendingDescartaTrabajo(t *testing.T) {
	achats := table.New(schema.AchatsHeaders)
	stock := table.New(schema.StockHeaders)
	c := workflow.NewCoordinator(achats, stock,
		table.New(schema.VentesHeaders), table.New(schema.ComptaHeaders), logger.Nop())

	unit := table.Row{}
	stock.SetValue(unit, schema.Stock.SKU, "JLH-1")
	stock.SetValue(unit, schema.Stock.PrixVente, "15")
	stock.Append(unit)

	r := workflow.NewRefresher(c, logger.Nop())
	// Con el worker aún parado, el trigger queda encolado y se puede descartar.
	r.Trigger()
	r.CancelPending()
	r.Start(context.Background())
	defer r.Stop()

	require.Never(t, func() bool {
		return c.Snapshot().StockPieces == 1
	}, 200*time.Millisecond, 20*time.Millisecond, "el trabajo cancelado no debe ejecutarse")
}

func TestRefresher_StopSinStart(t *testing.T) {
	c := newCoordinator(t)
	r := workflow.NewRefresher(c, logger.Nop())
	assert.NotPanics(t, func() { r.Stop() })
}
