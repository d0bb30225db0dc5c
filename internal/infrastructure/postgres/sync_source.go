package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/pos-ledger/internal/application/sync"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
)

var _ sync.RemoteSource = (*SyncSource)(nil)

// SyncSource materializa los fetch completos del sync: para cada tipo de
// entidad devuelve el conjunto del tenant ya serializado al formato de wire
// de la caché.
type SyncSource struct {
	categories *CategoryRepo
	products   *ProductRepo
	variants   *VariantRepo
	customers  *CustomerRepo
	suppliers  *SupplierRepo
	users      *UserRepo
	purchases  *PurchaseRepo
	batches    *StockBatchRepo
	sales      *SaleRepo
	returns    *ReturnRepo
}

// NewSyncSource construye la fuente remota sobre el pool.
func NewSyncSource(pool *pgxpool.Pool) *SyncSource {
	return &SyncSource{
		categories: NewCategoryRepository(pool),
		products:   NewProductRepository(pool),
		variants:   NewVariantRepository(pool),
		customers:  NewCustomerRepository(pool),
		suppliers:  NewSupplierRepository(pool),
		users:      NewUserRepository(pool),
		purchases:  NewPurchaseRepository(pool),
		batches:    NewStockBatchRepository(pool),
		sales:      NewSaleRepository(pool),
		returns:    NewReturnRepository(pool),
	}
}

// FetchAll devuelve el conjunto completo del tenant para un tipo de entidad.
func (s *SyncSource) FetchAll(ctx context.Context, tenantID string, kind entity.Kind) ([]localcache.Document, error) {
	switch kind {
	case entity.KindCategories:
		return fetch(ctx, tenantID, s.categories.ListByTenant, func(c *entity.Category) string { return c.ID })
	case entity.KindProducts:
		return fetch(ctx, tenantID, s.products.ListByTenant, func(p *entity.Product) string { return p.ID })
	case entity.KindVariants:
		return fetch(ctx, tenantID, s.variants.ListByTenant, func(v *entity.Variant) string { return v.ID })
	case entity.KindCustomers:
		return fetch(ctx, tenantID, s.customers.ListByTenant, func(c *entity.Customer) string { return c.ID })
	case entity.KindSuppliers:
		return fetch(ctx, tenantID, s.suppliers.ListByTenant, func(sp *entity.Supplier) string { return sp.ID })
	case entity.KindUsers:
		return fetch(ctx, tenantID, s.users.ListByTenant, func(u *entity.User) string { return u.ID })
	case entity.KindPurchases:
		return fetch(ctx, tenantID, s.purchases.ListByTenant, func(p *entity.Purchase) string { return p.ID })
	case entity.KindStockBatches:
		return fetch(ctx, tenantID, s.batches.ListByTenant, func(b *entity.StockBatch) string { return b.ID })
	case entity.KindSales:
		return fetch(ctx, tenantID, s.sales.ListByTenant, func(sa *entity.Sale) string { return sa.ID })
	case entity.KindReturns:
		return fetch(ctx, tenantID, s.returns.ListByTenant, func(ret *entity.Return) string { return ret.ID })
	default:
		return nil, fmt.Errorf("%w: %s", localcache.ErrUnknownKind, kind)
	}
}

func fetch[T any](
	ctx context.Context,
	tenantID string,
	list func(context.Context, string) ([]T, error),
	idOf func(T) string,
) ([]localcache.Document, error) {
	items, err := list(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return localcache.EncodeAll(items, idOf)
}
