package localcache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
)

func doc(id, payload string) localcache.Document {
	return localcache.Document{ID: id, Data: []byte(payload)}
}

func idsOf(docs []localcache.Document) []string {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids
}

// ──────────────────────────────────────────────────────────────────────────────
// Round-trip: clear → insertMany → loadAll devuelve el mismo conjunto,
// independiente del orden de inserción.
// ──────────────────────────────────────────────────────────────────────────────

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := localcache.NewMemory("t1")

	require.NoError(t, store.Clear(ctx, entity.KindProducts))
	require.NoError(t, store.InsertMany(ctx, entity.KindProducts, []localcache.Document{
		doc("c", `{"id":"c"}`), doc("a", `{"id":"a"}`), doc("b", `{"id":"b"}`),
	}))

	docs, err := store.LoadAll(ctx, entity.KindProducts)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, idsOf(docs), "conjunto igual sin importar orden")
}

func TestMemoryStore_UpdateOneEsLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := localcache.NewMemory("t1")

	require.NoError(t, store.InsertOne(ctx, entity.KindVariants, doc("v1", `{"price":"10"}`)))
	require.NoError(t, store.UpdateOne(ctx, entity.KindVariants, doc("v1", `{"price":"20"}`)))

	docs, err := store.LoadAll(ctx, entity.KindVariants)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.JSONEq(t, `{"price":"20"}`, string(docs[0].Data))
}

func TestMemoryStore_RemoveOne(t *testing.T) {
	ctx := context.Background()
	store := localcache.NewMemory("t1")

	require.NoError(t, store.InsertOne(ctx, entity.KindCustomers, doc("c1", `{}`)))
	require.NoError(t, store.RemoveOne(ctx, entity.KindCustomers, "c1"))
	// Remover un id inexistente no es error.
	require.NoError(t, store.RemoveOne(ctx, entity.KindCustomers, "no-existe"))

	docs, err := store.LoadAll(ctx, entity.KindCustomers)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStore_ClearSoloAfectaElTipo(t *testing.T) {
	ctx := context.Background()
	store := localcache.NewMemory("t1")

	require.NoError(t, store.InsertOne(ctx, entity.KindSales, doc("s1", `{}`)))
	require.NoError(t, store.InsertOne(ctx, entity.KindReturns, doc("r1", `{}`)))

	require.NoError(t, store.Clear(ctx, entity.KindSales))

	sales, err := store.LoadAll(ctx, entity.KindSales)
	require.NoError(t, err)
	assert.Empty(t, sales)

	returns, err := store.LoadAll(ctx, entity.KindReturns)
	require.NoError(t, err)
	assert.Len(t, returns, 1, "clear de un tipo no toca los demás")
}

func TestMemoryStore_KindDesconocidoRechazado(t *testing.T) {
	ctx := context.Background()
	store := localcache.NewMemory("t1")

	err := store.InsertOne(ctx, entity.Kind("facturas"), doc("x", `{}`))
	require.ErrorIs(t, err, localcache.ErrUnknownKind)
}

func TestMemoryStore_CerradoRechazaOperaciones(t *testing.T) {
	ctx := context.Background()
	store := localcache.NewMemory("t1")
	require.NoError(t, store.Close())

	_, err := store.LoadAll(ctx, entity.KindProducts)
	require.ErrorIs(t, err, localcache.ErrClosed)
	require.ErrorIs(t, store.InsertOne(ctx, entity.KindProducts, doc("a", `{}`)), localcache.ErrClosed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cola de reconciliación
// ──────────────────────────────────────────────────────────────────────────────

func TestMemoryStore_ReconcileEncolaYDrena(t *testing.T) {
	ctx := context.Background()
	store := localcache.NewMemory("t1")

	require.NoError(t, store.EnqueueReconcile(ctx, entity.KindSales))
	require.NoError(t, store.EnqueueReconcile(ctx, entity.KindVariants))
	require.NoError(t, store.EnqueueReconcile(ctx, entity.KindSales)) // duplicado colapsa

	kinds, err := store.DrainReconcile(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []entity.Kind{entity.KindSales, entity.KindVariants}, kinds)

	// Segundo drain: vacío.
	kinds, err = store.DrainReconcile(ctx)
	require.NoError(t, err)
	assert.Empty(t, kinds)
}

// ──────────────────────────────────────────────────────────────────────────────
// Codec de wire
// ──────────────────────────────────────────────────────────────────────────────

func TestEncodeDecodeAll(t *testing.T) {
	products := []entity.Product{
		{ID: "p1", TenantID: "t1", Name: "Camiseta"},
		{ID: "p2", TenantID: "t1", Name: "Gorra"},
	}

	docs, err := localcache.EncodeAll(products, func(p entity.Product) string { return p.ID })
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "p1", docs[0].ID)

	decoded, err := localcache.DecodeAll[entity.Product](docs)
	require.NoError(t, err)
	assert.Equal(t, products, decoded)
}

func TestDecodeAll_JSONCorruptoFalla(t *testing.T) {
	_, err := localcache.DecodeAll[entity.Product]([]localcache.Document{doc("x", `{no-json`)})
	require.Error(t, err)
}
