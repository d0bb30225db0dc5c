package pos_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
)

// Dobles en memoria de los puertos remotos, análogos a los adaptadores
// postgres pero sin transporte. Cada uno guarda punteros a copias para que
// las mutaciones del caso de uso no contaminen el "remoto".

type memVariantRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Variant
}

func newMemVariantRepo() *memVariantRepo {
	return &memVariantRepo{rows: make(map[string]*entity.Variant)}
}

func (r *memVariantRepo) Create(v *entity.Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.rows[v.ID] = &cp
	return nil
}

func (r *memVariantRepo) GetByID(id string) (*entity.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *memVariantRepo) Update(v *entity.Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.rows[v.ID] = &cp
	return nil
}

func (r *memVariantRepo) UpdateCostPrice(variantID string, cost decimal.Decimal, newPrice *decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.rows[variantID]
	if !ok {
		return errors.New("variante inexistente")
	}
	v.UnitCost = cost
	if newPrice != nil {
		v.Price = *newPrice
	}
	return nil
}

func (r *memVariantRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memVariantRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Variant
	for _, v := range r.rows {
		if v.TenantID == tenantID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memSupplierRepo struct {
	rows map[string]*entity.Supplier
}

func newMemSupplierRepo() *memSupplierRepo {
	return &memSupplierRepo{rows: make(map[string]*entity.Supplier)}
}

func (r *memSupplierRepo) Create(s *entity.Supplier) error { r.rows[s.ID] = s; return nil }
func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.rows[id], nil
}
func (r *memSupplierRepo) Update(s *entity.Supplier) error { r.rows[s.ID] = s; return nil }
func (r *memSupplierRepo) Delete(id string) error          { delete(r.rows, id); return nil }
func (r *memSupplierRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.rows {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

type memCustomerRepo struct {
	rows map[string]*entity.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{rows: make(map[string]*entity.Customer)}
}

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.rows[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.rows[id], nil
}
func (r *memCustomerRepo) Update(c *entity.Customer) error { r.rows[c.ID] = c; return nil }
func (r *memCustomerRepo) Delete(id string) error          { delete(r.rows, id); return nil }
func (r *memCustomerRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.rows {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memBatchRepo struct {
	mu   sync.Mutex
	rows []*entity.StockBatch
}

func newMemBatchRepo() *memBatchRepo { return &memBatchRepo{} }

func (r *memBatchRepo) Create(b *entity.StockBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *memBatchRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.StockBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockBatch
	for _, b := range r.rows {
		if b.TenantID == tenantID {
			out = append(out, b)
		}
	}
	return out, nil
}

type memSaleRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Sale
}

func newMemSaleRepo() *memSaleRepo { return &memSaleRepo{rows: make(map[string]*entity.Sale)} }

func (r *memSaleRepo) Create(s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSaleRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.rows {
		if s.TenantID == tenantID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memSaleRepo) ListUnpaidByCustomer(customerID string) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.rows {
		if s.CustomerID == customerID && s.RemainingAmount.GreaterThan(decimal.Zero) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memSaleRepo) UpdatePayment(saleID string, downPayment, remaining decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[saleID]
	if !ok {
		return errors.New("venta inexistente")
	}
	s.DownPayment = downPayment
	s.RemainingAmount = remaining
	return nil
}

func (r *memSaleRepo) SumRemainingByCustomer(customerID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, s := range r.rows {
		if s.CustomerID == customerID {
			sum = sum.Add(s.RemainingAmount)
		}
	}
	return sum, nil
}

type memReturnRepo struct {
	mu   sync.Mutex
	rows []*entity.Return
}

func newMemReturnRepo() *memReturnRepo { return &memReturnRepo{} }

func (r *memReturnRepo) Create(ret *entity.Return) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ret
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *memReturnRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Return, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Return
	for _, ret := range r.rows {
		if ret.TenantID == tenantID {
			cp := *ret
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memReturnRepo) ListBySale(saleID string) ([]*entity.Return, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Return
	for _, ret := range r.rows {
		if ret.SaleID == saleID {
			cp := *ret
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memPurchaseRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Purchase
}

func newMemPurchaseRepo() *memPurchaseRepo {
	return &memPurchaseRepo{rows: make(map[string]*entity.Purchase)}
}

func (r *memPurchaseRepo) Create(p *entity.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *memPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPurchaseRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Purchase
	for _, p := range r.rows {
		if p.TenantID == tenantID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPurchaseRepo) ListUnpaidBySupplier(supplierID string) ([]*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Purchase
	for _, p := range r.rows {
		if p.SupplierID == supplierID && p.RemainingAmount.GreaterThan(decimal.Zero) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memPurchaseRepo) UpdatePayment(purchaseID string, amountPaid, remaining decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[purchaseID]
	if !ok {
		return errors.New("compra inexistente")
	}
	p.AmountPaid = amountPaid
	p.RemainingAmount = remaining
	return nil
}

func (r *memPurchaseRepo) SumRemainingBySupplier(supplierID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, p := range r.rows {
		if p.SupplierID == supplierID {
			sum = sum.Add(p.RemainingAmount)
		}
	}
	return sum, nil
}

// fakeTxRunner ejecuta los callbacks contra los repos en memoria, sin
// transacción real. failWith simula un rollback: el callback no corre y los
// repos quedan intactos.
type fakeTxRunner struct {
	purchases *memPurchaseRepo
	batches   *memBatchRepo
	variants  *memVariantRepo
	sales     *memSaleRepo
	failWith  error
}

func (r *fakeTxRunner) RunIntake(_ context.Context, fn func(
	repository.PurchaseRepository,
	repository.StockBatchRepository,
	repository.VariantRepository,
) error) error {
	if r.failWith != nil {
		return r.failWith
	}
	return fn(r.purchases, r.batches, r.variants)
}

func (r *fakeTxRunner) RunSettlement(_ context.Context, fn func(
	repository.SaleRepository,
	repository.PurchaseRepository,
) error) error {
	if r.failWith != nil {
		return r.failWith
	}
	return fn(r.sales, r.purchases)
}

// fixedStockReader devuelve cantidades pre-cargadas (cero si no hay entrada).
type fixedStockReader struct {
	qty map[string]int64
}

func (s fixedStockReader) ResolvedQuantity(_ context.Context, variantID string) (int64, error) {
	return s.qty[variantID], nil
}

// brokenStore fuerza el fallo del espejo local manteniendo operativa la cola
// de reconciliación.
type brokenStore struct {
	*localcache.MemoryStore
}

func (s brokenStore) UpdateOne(context.Context, entity.Kind, localcache.Document) error {
	return errors.New("caché local caída")
}
