package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-ledger/internal/application/catalog"
	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

const testTenant = "tenant-1"

// Dobles mínimos de los puertos remotos: mapas en memoria, más saldos fijos
// para las guardias de deuda.

type memRepo[T any] struct {
	rows map[string]*T
	idOf func(*T) string
	tnOf func(*T) string
}

func (r *memRepo[T]) Create(v *T) error { r.rows[r.idOf(v)] = v; return nil }
func (r *memRepo[T]) GetByID(id string) (*T, error) {
	return r.rows[id], nil
}
func (r *memRepo[T]) Update(v *T) error { r.rows[r.idOf(v)] = v; return nil }
func (r *memRepo[T]) Delete(id string) error {
	delete(r.rows, id)
	return nil
}
func (r *memRepo[T]) ListByTenant(_ context.Context, tenantID string) ([]*T, error) {
	var out []*T
	for _, v := range r.rows {
		if r.tnOf(v) == tenantID {
			out = append(out, v)
		}
	}
	return out, nil
}

type stubVariantRepo struct{ memRepo[entity.Variant] }

func (r *stubVariantRepo) UpdateCostPrice(string, decimal.Decimal, *decimal.Decimal) error {
	return nil
}

type stubSaleRepo struct{ owed decimal.Decimal }

func (r *stubSaleRepo) Create(*entity.Sale) error            { return nil }
func (r *stubSaleRepo) GetByID(string) (*entity.Sale, error) { return nil, nil }
func (r *stubSaleRepo) ListByTenant(context.Context, string) ([]*entity.Sale, error) {
	return nil, nil
}
func (r *stubSaleRepo) ListUnpaidByCustomer(string) ([]*entity.Sale, error) { return nil, nil }
func (r *stubSaleRepo) UpdatePayment(string, decimal.Decimal, decimal.Decimal) error {
	return nil
}
func (r *stubSaleRepo) SumRemainingByCustomer(string) (decimal.Decimal, error) {
	return r.owed, nil
}

type stubPurchaseRepo struct{ owed decimal.Decimal }

func (r *stubPurchaseRepo) Create(*entity.Purchase) error            { return nil }
func (r *stubPurchaseRepo) GetByID(string) (*entity.Purchase, error) { return nil, nil }
func (r *stubPurchaseRepo) ListByTenant(context.Context, string) ([]*entity.Purchase, error) {
	return nil, nil
}
func (r *stubPurchaseRepo) ListUnpaidBySupplier(string) ([]*entity.Purchase, error) {
	return nil, nil
}
func (r *stubPurchaseRepo) UpdatePayment(string, decimal.Decimal, decimal.Decimal) error {
	return nil
}
func (r *stubPurchaseRepo) SumRemainingBySupplier(string) (decimal.Decimal, error) {
	return r.owed, nil
}

type catalogEnv struct {
	categories *memRepo[entity.Category]
	products   *memRepo[entity.Product]
	variants   *stubVariantRepo
	customers  *memRepo[entity.Customer]
	suppliers  *memRepo[entity.Supplier]
	sales      *stubSaleRepo
	purchases  *stubPurchaseRepo
	store      *localcache.MemoryStore
	svc        *catalog.Service
}

func newCatalogEnv(t *testing.T) *catalogEnv {
	t.Helper()
	env := &catalogEnv{
		categories: &memRepo[entity.Category]{
			rows: map[string]*entity.Category{},
			idOf: func(c *entity.Category) string { return c.ID },
			tnOf: func(c *entity.Category) string { return c.TenantID },
		},
		products: &memRepo[entity.Product]{
			rows: map[string]*entity.Product{},
			idOf: func(p *entity.Product) string { return p.ID },
			tnOf: func(p *entity.Product) string { return p.TenantID },
		},
		variants: &stubVariantRepo{memRepo[entity.Variant]{
			rows: map[string]*entity.Variant{},
			idOf: func(v *entity.Variant) string { return v.ID },
			tnOf: func(v *entity.Variant) string { return v.TenantID },
		}},
		customers: &memRepo[entity.Customer]{
			rows: map[string]*entity.Customer{},
			idOf: func(c *entity.Customer) string { return c.ID },
			tnOf: func(c *entity.Customer) string { return c.TenantID },
		},
		suppliers: &memRepo[entity.Supplier]{
			rows: map[string]*entity.Supplier{},
			idOf: func(s *entity.Supplier) string { return s.ID },
			tnOf: func(s *entity.Supplier) string { return s.TenantID },
		},
		sales:     &stubSaleRepo{owed: decimal.Zero},
		purchases: &stubPurchaseRepo{owed: decimal.Zero},
		store:     localcache.NewMemory(testTenant),
	}
	env.svc = catalog.NewService(
		env.categories, env.products, env.variants, env.customers, env.suppliers,
		env.sales, env.purchases, env.store, logger.Nop())
	return env
}

// ──────────────────────────────────────────────
// Guardias de deuda
// ──────────────────────────────────────────────

func TestDeleteCustomer_ConDeudaSeRechaza(t *testing.T) {
	env := newCatalogEnv(t)
	env.customers.rows["C1"] = &entity.Customer{ID: "C1", TenantID: testTenant, Name: "cliente"}
	env.sales.owed = decimal.NewFromInt(10)

	err := env.svc.DeleteCustomer(context.Background(), testTenant, "C1")
	assert.ErrorIs(t, err, domain.ErrConstraintViolation, "saldo pendiente bloquea el borrado")
	assert.NotNil(t, env.customers.rows["C1"], "el cliente sigue existiendo")
}

func TestDeleteCustomer_SinDeudaBorra(t *testing.T) {
	env := newCatalogEnv(t)
	env.customers.rows["C1"] = &entity.Customer{ID: "C1", TenantID: testTenant, Name: "cliente"}

	require.NoError(t, env.svc.DeleteCustomer(context.Background(), testTenant, "C1"),
		"saldo exactamente cero borra")
	assert.Nil(t, env.customers.rows["C1"])
}

func TestDeleteSupplier_ConDeudaSeRechaza(t *testing.T) {
	env := newCatalogEnv(t)
	env.suppliers.rows["S1"] = &entity.Supplier{ID: "S1", TenantID: testTenant, Name: "proveedor"}
	env.purchases.owed = decimal.NewFromInt(1)

	err := env.svc.DeleteSupplier(context.Background(), testTenant, "S1")
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	env.purchases.owed = decimal.Zero
	assert.NoError(t, env.svc.DeleteSupplier(context.Background(), testTenant, "S1"))
}

// ──────────────────────────────────────────────
// Alcance por tenant y referencias
// ──────────────────────────────────────────────

func TestCatalog_CruceDeTenantEsNotFound(t *testing.T) {
	env := newCatalogEnv(t)
	env.categories.rows["CAT9"] = &entity.Category{ID: "CAT9", TenantID: "otro-tenant", Name: "ajena"}

	_, err := env.svc.UpdateCategory(context.Background(), testTenant, "CAT9", "nueva")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = env.svc.DeleteCategory(context.Background(), testTenant, "CAT9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateVariant_ExigeProductoDelTenant(t *testing.T) {
	env := newCatalogEnv(t)
	env.products.rows["P9"] = &entity.Product{ID: "P9", TenantID: "otro-tenant", Name: "ajeno"}

	_, err := env.svc.CreateVariant(context.Background(), testTenant, catalog.VariantInput{
		ProductID: "P9", Name: "talla M", Price: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el producto debe ser del tenant")
}

func TestCreateProduct_CategoriaInexistente(t *testing.T) {
	env := newCatalogEnv(t)

	_, err := env.svc.CreateProduct(context.Background(), testTenant, catalog.ProductInput{
		CategoryID: "nope", Name: "camisa",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := env.svc.CreateProduct(context.Background(), testTenant, catalog.ProductInput{Name: "camisa"})
	require.NoError(t, err, "sin categoría es válido")
	assert.Equal(t, "camisa", p.Name)
}

// ──────────────────────────────────────────────
// Espejo local
// ──────────────────────────────────────────────

func TestCatalog_EscriturasEspejanEnCache(t *testing.T) {
	env := newCatalogEnv(t)
	ctx := context.Background()

	cat, err := env.svc.CreateCategory(ctx, testTenant, "ropa")
	require.NoError(t, err)

	docs, err := env.store.LoadAll(ctx, entity.KindCategories)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, cat.ID, docs[0].ID)

	require.NoError(t, env.svc.DeleteCategory(ctx, testTenant, cat.ID))
	docs, err = env.store.LoadAll(ctx, entity.KindCategories)
	require.NoError(t, err)
	assert.Empty(t, docs, "el borrado también se espeja")
}

func TestUpdateVariant_NoTocaElCosto(t *testing.T) {
	env := newCatalogEnv(t)
	env.variants.rows["V1"] = &entity.Variant{
		ID: "V1", TenantID: testTenant, ProductID: "P1", Name: "talla M",
		UnitCost: decimal.NewFromInt(7), Price: decimal.NewFromInt(10),
	}

	v, err := env.svc.UpdateVariant(context.Background(), testTenant, "V1", catalog.VariantInput{
		Name: "talla M roja", Price: decimal.NewFromInt(12), LowStockThreshold: 3,
	})
	require.NoError(t, err)
	assert.True(t, v.UnitCost.Equal(decimal.NewFromInt(7)),
		"el costo promedio solo lo muta la entrada de stock")
	assert.True(t, v.Price.Equal(decimal.NewFromInt(12)))
}
