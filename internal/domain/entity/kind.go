package entity

// Kind identifica un tipo de entidad rastreado por la caché local y el sync.
// El valor es el nombre de colección en el formato de wire (snake_case),
// el mismo que usan las tablas remotas y los hashes de Redis.
type Kind string

const (
	KindCategories  Kind = "categories"
	KindProducts    Kind = "products"
	KindVariants    Kind = "variants"
	KindCustomers   Kind = "customers"
	KindSuppliers   Kind = "suppliers"
	KindUsers       Kind = "users"
	KindPurchases   Kind = "purchases"
	KindStockBatches Kind = "stock_batches"
	KindSales       Kind = "sales"
	KindReturns     Kind = "returns"
)

// SyncOrder es el orden secuencial en que el coordinador sincroniza los tipos
// de entidad: primero catálogo y maestros, después el ledger de eventos.
// El orden importa solo para legibilidad del progreso; cada tipo se reemplaza completo.
var SyncOrder = []Kind{
	KindCategories,
	KindProducts,
	KindVariants,
	KindCustomers,
	KindSuppliers,
	KindUsers,
	KindPurchases,
	KindStockBatches,
	KindSales,
	KindReturns,
}

// Valid indica si k es uno de los tipos rastreados.
func (k Kind) Valid() bool {
	for _, known := range SyncOrder {
		if k == known {
			return true
		}
	}
	return false
}
