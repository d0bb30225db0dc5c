package pos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-ledger/internal/application/pos"
	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

type debtEnv struct {
	sales     *memSaleRepo
	purchases *memPurchaseRepo
	customers *memCustomerRepo
	suppliers *memSupplierRepo
	store     *localcache.MemoryStore
	uc        *pos.SettleDebtUseCase
}

func newDebtEnv(t *testing.T) *debtEnv {
	t.Helper()
	env := &debtEnv{
		sales:     newMemSaleRepo(),
		purchases: newMemPurchaseRepo(),
		customers: newMemCustomerRepo(),
		suppliers: newMemSupplierRepo(),
		store:     localcache.NewMemory(testTenant),
	}
	tx := &fakeTxRunner{purchases: env.purchases, sales: env.sales}
	env.uc = pos.NewSettleDebtUseCase(
		tx, env.sales, env.purchases, env.customers, env.suppliers, env.store, logger.Nop())
	return env
}

func (e *debtEnv) seedCreditSale(id string, daysAgo int, total, remaining string) {
	tot := dec(total)
	rem := dec(remaining)
	_ = e.sales.Create(&entity.Sale{
		ID:              id,
		TenantID:        testTenant,
		CustomerID:      "C1",
		Date:            time.Now().AddDate(0, 0, -daysAgo),
		Total:           tot,
		DownPayment:     tot.Sub(rem),
		RemainingAmount: rem,
	})
}

func (e *debtEnv) seedCreditPurchase(id string, daysAgo int, total, remaining string) {
	tot := dec(total)
	rem := dec(remaining)
	_ = e.purchases.Create(&entity.Purchase{
		ID:              id,
		TenantID:        testTenant,
		SupplierID:      "S1",
		Date:            time.Now().AddDate(0, 0, -daysAgo),
		Total:           tot,
		AmountPaid:      tot.Sub(rem),
		RemainingAmount: rem,
	})
}

// ──────────────────────────────────────────────
// Abonos de cliente
// ──────────────────────────────────────────────

func TestSettleCustomerDebt_OldestFirst(t *testing.T) {
	env := newDebtEnv(t)
	_ = env.customers.Create(&entity.Customer{ID: "C1", TenantID: testTenant})
	env.seedCreditSale("VIEJA", 10, "50", "50")
	env.seedCreditSale("NUEVA", 1, "100", "100")

	updated, err := env.uc.SettleCustomerDebt(context.Background(), testTenant, "C1", dec("120"))
	require.NoError(t, err)
	require.Len(t, updated, 2, "el abono alcanza para tocar ambas ventas")

	vieja, _ := env.sales.GetByID("VIEJA")
	assert.True(t, vieja.RemainingAmount.IsZero(), "la venta más vieja se salda primero")
	assert.True(t, vieja.DownPayment.Equal(dec("50")))

	nueva, _ := env.sales.GetByID("NUEVA")
	assert.True(t, nueva.RemainingAmount.Equal(dec("30")), "a la nueva le quedan 100 - 70")
	assert.True(t, nueva.DownPayment.Equal(dec("70")))
}

func TestSettleCustomerDebt_AbonoParcialNoTocaLasSiguientes(t *testing.T) {
	env := newDebtEnv(t)
	_ = env.customers.Create(&entity.Customer{ID: "C1", TenantID: testTenant})
	env.seedCreditSale("VIEJA", 10, "50", "50")
	env.seedCreditSale("NUEVA", 1, "100", "100")

	updated, err := env.uc.SettleCustomerDebt(context.Background(), testTenant, "C1", dec("20"))
	require.NoError(t, err)
	require.Len(t, updated, 1, "20 no agota la primera venta")

	vieja, _ := env.sales.GetByID("VIEJA")
	assert.True(t, vieja.RemainingAmount.Equal(dec("30")))
	nueva, _ := env.sales.GetByID("NUEVA")
	assert.True(t, nueva.RemainingAmount.Equal(dec("100")), "la nueva queda intacta")
}

func TestSettleCustomerDebt_SobrepagoRechazado(t *testing.T) {
	env := newDebtEnv(t)
	_ = env.customers.Create(&entity.Customer{ID: "C1", TenantID: testTenant})
	env.seedCreditSale("VIEJA", 10, "50", "50")

	_, err := env.uc.SettleCustomerDebt(context.Background(), testTenant, "C1", dec("60"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no hay pseudo-registros negativos: se rechaza")

	vieja, _ := env.sales.GetByID("VIEJA")
	assert.True(t, vieja.RemainingAmount.Equal(dec("50")), "nada se aplica en un rechazo")
}

func TestSettleCustomerDebt_Validaciones(t *testing.T) {
	env := newDebtEnv(t)
	ctx := context.Background()

	_, err := env.uc.SettleCustomerDebt(ctx, testTenant, "C1", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el monto debe ser positivo")

	_, err = env.uc.SettleCustomerDebt(ctx, testTenant, "nope", dec("10"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_ = env.customers.Create(&entity.Customer{ID: "C9", TenantID: "otro-tenant"})
	_, err = env.uc.SettleCustomerDebt(ctx, testTenant, "C9", dec("10"))
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente de otro tenant es inexistente")
}

func TestSettleCustomerDebt_EspejaVentasActualizadas(t *testing.T) {
	env := newDebtEnv(t)
	_ = env.customers.Create(&entity.Customer{ID: "C1", TenantID: testTenant})
	env.seedCreditSale("VIEJA", 10, "50", "50")

	_, err := env.uc.SettleCustomerDebt(context.Background(), testTenant, "C1", dec("50"))
	require.NoError(t, err)

	docs, err := env.store.LoadAll(context.Background(), entity.KindSales)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	locales, err := localcache.DecodeAll[entity.Sale](docs)
	require.NoError(t, err)
	assert.True(t, locales[0].RemainingAmount.IsZero(), "el espejo refleja el saldo nuevo")
}

// ──────────────────────────────────────────────
// Pagos a proveedor
// ──────────────────────────────────────────────

func TestSettleSupplierDebt_OldestFirst(t *testing.T) {
	env := newDebtEnv(t)
	_ = env.suppliers.Create(&entity.Supplier{ID: "S1", TenantID: testTenant})
	env.seedCreditPurchase("VIEJA", 20, "200", "200")
	env.seedCreditPurchase("NUEVA", 2, "300", "300")

	updated, err := env.uc.SettleSupplierDebt(context.Background(), testTenant, "S1", dec("250"))
	require.NoError(t, err)
	require.Len(t, updated, 2)

	vieja, _ := env.purchases.GetByID("VIEJA")
	assert.True(t, vieja.RemainingAmount.IsZero(), "la compra más vieja se paga primero")
	nueva, _ := env.purchases.GetByID("NUEVA")
	assert.True(t, nueva.RemainingAmount.Equal(dec("250")))
	assert.True(t, nueva.AmountPaid.Equal(dec("50")))
}

func TestSettleSupplierDebt_SobrepagoRechazado(t *testing.T) {
	env := newDebtEnv(t)
	_ = env.suppliers.Create(&entity.Supplier{ID: "S1", TenantID: testTenant})
	env.seedCreditPurchase("VIEJA", 20, "200", "150")

	_, err := env.uc.SettleSupplierDebt(context.Background(), testTenant, "S1", dec("151"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
