package pos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-ledger/internal/application/pos"
	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

type saleEnv struct {
	sales     *memSaleRepo
	customers *memCustomerRepo
	store     *localcache.MemoryStore
	uc        *pos.CompleteSaleUseCase
}

func newSaleEnv(t *testing.T) *saleEnv {
	t.Helper()
	env := &saleEnv{
		sales:     newMemSaleRepo(),
		customers: newMemCustomerRepo(),
		store:     localcache.NewMemory(testTenant),
	}
	env.uc = pos.NewCompleteSaleUseCase(env.sales, env.customers, env.store, logger.Nop())
	return env
}

func goodLine(variantID string, qty int64, price, cost string) entity.SaleLine {
	return entity.SaleLine{
		VariantID: variantID,
		Name:      "línea " + variantID,
		Quantity:  qty,
		SalePrice: dec(price),
		UnitCost:  dec(cost),
		Kind:      entity.LineKindGood,
	}
}

// ──────────────────────────────────────────────
// Totales y utilidad
// ──────────────────────────────────────────────

func TestCompleteSale_UtilidadSobreBienes(t *testing.T) {
	env := newSaleEnv(t)

	sale, err := env.uc.CompleteSale(context.Background(), pos.SaleInput{
		TenantID: testTenant,
		UserID:   "U1",
		Lines:    []entity.SaleLine{goodLine("V1", 2, "100", "60")},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("200")), "total = 2 * 100")
	assert.True(t, sale.Profit.Equal(dec("80")), "utilidad = 2 * (100 - 60), obtuvo %s", sale.Profit)
	assert.True(t, sale.RemainingAmount.Equal(dec("200")), "sin abono todo queda a deber")
}

func TestCompleteSale_ServicioSumaTotalNoUtilidad(t *testing.T) {
	env := newSaleEnv(t)

	servicio := entity.SaleLine{
		VariantID: "SVC", Name: "instalación", Quantity: 1,
		SalePrice: dec("50"), Kind: entity.LineKindService,
	}
	sale, err := env.uc.CompleteSale(context.Background(), pos.SaleInput{
		TenantID:    testTenant,
		DownPayment: dec("250"),
		Lines:       []entity.SaleLine{goodLine("V1", 2, "100", "60"), servicio},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("250")), "el servicio suma al total")
	assert.True(t, sale.Profit.Equal(dec("80")), "el servicio no aporta utilidad")
}

func TestCompleteSale_CostoNuncaCapturadoQuedaEnCero(t *testing.T) {
	env := newSaleEnv(t)

	sale, err := env.uc.CompleteSale(context.Background(), pos.SaleInput{
		TenantID:    testTenant,
		DownPayment: dec("100"),
		Lines:       []entity.SaleLine{goodLine("V1", 1, "100", "0")},
	})
	require.NoError(t, err)
	assert.True(t, sale.Profit.Equal(dec("100")), "costo cero: toda la venta es utilidad")
}

// ──────────────────────────────────────────────
// Crédito
// ──────────────────────────────────────────────

func TestCompleteSale_CreditoExigeCliente(t *testing.T) {
	env := newSaleEnv(t)

	_, err := env.uc.CompleteSale(context.Background(), pos.SaleInput{
		TenantID:    testTenant,
		DownPayment: dec("50"),
		Lines:       []entity.SaleLine{goodLine("V1", 1, "100", "60")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "saldo pendiente sin cliente se rechaza")

	_ = env.customers.Create(&entity.Customer{ID: "C1", TenantID: testTenant, Name: "cliente"})
	sale, err := env.uc.CompleteSale(context.Background(), pos.SaleInput{
		TenantID:    testTenant,
		CustomerID:  "C1",
		DownPayment: dec("50"),
		Lines:       []entity.SaleLine{goodLine("V1", 1, "100", "60")},
	})
	require.NoError(t, err)
	assert.True(t, sale.RemainingAmount.Equal(dec("50")))
	assert.Equal(t, "C1", sale.CustomerID)
}

func TestCompleteSale_ClienteDeOtroTenant(t *testing.T) {
	env := newSaleEnv(t)
	_ = env.customers.Create(&entity.Customer{ID: "C9", TenantID: "otro-tenant"})

	_, err := env.uc.CompleteSale(context.Background(), pos.SaleInput{
		TenantID:    testTenant,
		CustomerID:  "C9",
		DownPayment: dec("100"),
		Lines:       []entity.SaleLine{goodLine("V1", 1, "100", "60")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────
// Validaciones y espejo
// ──────────────────────────────────────────────

func TestCompleteSale_Validaciones(t *testing.T) {
	env := newSaleEnv(t)
	ctx := context.Background()

	casos := []struct {
		nombre string
		in     pos.SaleInput
	}{
		{"carrito vacío", pos.SaleInput{TenantID: testTenant}},
		{"cantidad cero", pos.SaleInput{TenantID: testTenant,
			Lines: []entity.SaleLine{goodLine("V1", 0, "10", "5")}}},
		{"precio negativo", pos.SaleInput{TenantID: testTenant,
			Lines: []entity.SaleLine{goodLine("V1", 1, "-10", "5")}}},
		{"tipo de línea desconocido", pos.SaleInput{TenantID: testTenant,
			Lines: []entity.SaleLine{{VariantID: "V1", Quantity: 1, SalePrice: dec("10"), Kind: "combo"}}}},
		{"abono negativo", pos.SaleInput{TenantID: testTenant, DownPayment: dec("-1"),
			Lines: []entity.SaleLine{goodLine("V1", 1, "10", "5")}}},
		{"abono mayor al total", pos.SaleInput{TenantID: testTenant, DownPayment: dec("11"),
			Lines: []entity.SaleLine{goodLine("V1", 1, "10", "5")}}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := env.uc.CompleteSale(ctx, c.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCompleteSale_EspejaEnCacheLocal(t *testing.T) {
	env := newSaleEnv(t)

	sale, err := env.uc.CompleteSale(context.Background(), pos.SaleInput{
		TenantID:    testTenant,
		DownPayment: dec("100"),
		Lines:       []entity.SaleLine{goodLine("V1", 1, "100", "60")},
	})
	require.NoError(t, err)

	docs, err := env.store.LoadAll(context.Background(), entity.KindSales)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, sale.ID, docs[0].ID)

	locales, err := localcache.DecodeAll[entity.Sale](docs)
	require.NoError(t, err)
	assert.True(t, locales[0].Profit.Equal(sale.Profit), "el espejo lleva la venta tal cual")
}
