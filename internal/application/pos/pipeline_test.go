package pos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-ledger/internal/application/pos"
	"github.com/tu-usuario/pos-ledger/internal/application/projection"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

// Recorrido completo del pipeline sobre una misma caché: la entrada de stock y
// la venta espejan sus registros, y la proyección los observa sin que ninguna
// operación escriba decrementos de stock.
func TestPipeline_EntradaVentaDevolucion(t *testing.T) {
	ctx := context.Background()
	store := localcache.NewMemory(testTenant)
	log := logger.Nop()

	variants := newMemVariantRepo()
	suppliers := newMemSupplierRepo()
	customers := newMemCustomerRepo()
	purchases := newMemPurchaseRepo()
	batches := newMemBatchRepo()
	sales := newMemSaleRepo()
	returns := newMemReturnRepo()
	tx := &fakeTxRunner{purchases: purchases, batches: batches, variants: variants, sales: sales}

	proj := projection.NewProjector(store)
	intake := pos.NewIntakeUseCase(tx, variants, suppliers, proj, store, log)
	completeSale := pos.NewCompleteSaleUseCase(sales, customers, store, log)
	processReturn := pos.NewProcessReturnUseCase(sales, returns, store, log)

	require.NoError(t, variants.Create(&entity.Variant{
		ID: "V1", TenantID: testTenant, Name: "camisa azul M", LowStockThreshold: 5,
	}))
	// La proyección también necesita la variante en la caché.
	doc, err := localcache.Encode("V1", entity.Variant{
		ID: "V1", TenantID: testTenant, Name: "camisa azul M", LowStockThreshold: 5,
	})
	require.NoError(t, err)
	require.NoError(t, store.InsertOne(ctx, entity.KindVariants, doc))

	// Entrada: lote de 50 a costo 10.
	_, err = intake.Intake(ctx, pos.IntakeInput{
		TenantID: testTenant,
		UserID:   "U1",
		Lines:    []pos.IntakeLine{{VariantID: "V1", Quantity: 50, UnitCost: dec("10")}},
	})
	require.NoError(t, err)

	qty, err := proj.ResolvedQuantity(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), qty, "el lote entra a la proyección")

	// Venta: 5 unidades a 20 con costo 10.
	sale, err := completeSale.CompleteSale(ctx, pos.SaleInput{
		TenantID:    testTenant,
		UserID:      "U1",
		DownPayment: dec("100"),
		Lines:       []entity.SaleLine{goodLine("V1", 5, "20", "10")},
	})
	require.NoError(t, err)
	assert.True(t, sale.Profit.Equal(dec("50")), "utilidad = 5 * (20 - 10)")

	qty, err = proj.ResolvedQuantity(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, int64(45), qty, "la venta merma sin escribir decrementos")

	// Devolución de 2 unidades: el Resolver restaura, nadie escribe lotes.
	_, err = processReturn.ProcessReturn(ctx, pos.ReturnInput{
		TenantID: testTenant,
		UserID:   "U1",
		SaleID:   sale.ID,
		Lines:    []pos.ReturnLineInput{{LineIndex: 0, Quantity: 2}},
	})
	require.NoError(t, err)

	snap, err := proj.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(47), snap.Resolved["V1"], "50 - 5 + 2")

	batchDocs, err := store.LoadAll(ctx, entity.KindStockBatches)
	require.NoError(t, err)
	assert.Len(t, batchDocs, 1, "ni la venta ni la devolución crean lotes")
	assert.Empty(t, snap.LowStock, "47 > umbral 5")
}

// La sobreventa no se compuerta: la segunda venta también se confirma y la
// proyección queda negativa como señal.
func TestPipeline_SobreventaQuedaNegativa(t *testing.T) {
	ctx := context.Background()
	store := localcache.NewMemory(testTenant)
	sales := newMemSaleRepo()
	customers := newMemCustomerRepo()
	completeSale := pos.NewCompleteSaleUseCase(sales, customers, store, logger.Nop())
	proj := projection.NewProjector(store)

	for i := 0; i < 2; i++ {
		_, err := completeSale.CompleteSale(ctx, pos.SaleInput{
			TenantID:    testTenant,
			DownPayment: dec("20"),
			Lines:       []entity.SaleLine{goodLine("V1", 1, "20", "10")},
		})
		require.NoError(t, err, "ambas ventas se confirman aunque no haya stock")
	}

	qty, err := proj.ResolvedQuantity(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, int64(-2), qty, "cantidad negativa = señal de sobreventa")
}
