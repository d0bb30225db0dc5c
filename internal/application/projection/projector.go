package projection

import (
	"context"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/domain/stock"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
)

// Snapshot estado derivado para los consumidores (pantalla POS, inventario):
// el mapa de stock resuelto, las alertas de stock bajo y los índices de
// búsqueda de variantes. Todo se deriva en fresco desde las colecciones
// fuente de la caché local en cada llamada; el Snapshot no es fuente de
// verdad ni se memoiza.
type Snapshot struct {
	Resolved map[string]int64
	LowStock []stock.Alert
	Variants stock.VariantIndex
}

// Projector lee las colecciones fuente de la caché local y aplica el Resolver.
// Nunca falla por datos faltantes: una colección vacía aporta cero.
type Projector struct {
	store localcache.Store
}

// NewProjector construye el projector sobre la caché del tenant.
func NewProjector(store localcache.Store) *Projector {
	return &Projector{store: store}
}

// Snapshot deriva el estado completo desde la caché.
func (p *Projector) Snapshot(ctx context.Context) (*Snapshot, error) {
	batches, err := loadKind[entity.StockBatch](ctx, p.store, entity.KindStockBatches)
	if err != nil {
		return nil, err
	}
	sales, err := loadKind[entity.Sale](ctx, p.store, entity.KindSales)
	if err != nil {
		return nil, err
	}
	returns, err := loadKind[entity.Return](ctx, p.store, entity.KindReturns)
	if err != nil {
		return nil, err
	}
	variants, err := loadKind[entity.Variant](ctx, p.store, entity.KindVariants)
	if err != nil {
		return nil, err
	}

	resolved := stock.Resolve(batches, stock.SaleLines(sales), stock.ReturnLines(returns))
	return &Snapshot{
		Resolved: resolved,
		LowStock: stock.LowStock(variants, resolved),
		Variants: stock.BuildVariantIndex(variants),
	}, nil
}

// ResolvedQuantity implementa pos.StockReader: cantidad resuelta de una
// variante, derivada en fresco (cero si la variante no tiene eventos).
func (p *Projector) ResolvedQuantity(ctx context.Context, variantID string) (int64, error) {
	snap, err := p.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snap.Resolved[variantID], nil
}

// Collection carga una colección completa de la caché, decodificada.
func Collection[T any](ctx context.Context, p *Projector, kind entity.Kind) ([]T, error) {
	return loadKind[T](ctx, p.store, kind)
}

func loadKind[T any](ctx context.Context, store localcache.Store, kind entity.Kind) ([]T, error) {
	docs, err := store.LoadAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	return localcache.DecodeAll[T](docs)
}
