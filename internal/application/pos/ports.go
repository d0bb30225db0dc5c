package pos

import (
	"context"

	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del backend remoto,
// pasando repositorios atados a esa tx. La atomicidad cubre solo el lado
// remoto de cada operación compuesta; el espejo local va después y por fuera.
type TxRunner interface {
	// RunIntake agrupa compra + lotes + actualización de variantes.
	RunIntake(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		batchRepo repository.StockBatchRepository,
		variantRepo repository.VariantRepository,
	) error) error

	// RunSettlement agrupa las actualizaciones de pago oldest-first.
	RunSettlement(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// StockReader expone la cantidad resuelta de una variante, siempre derivada en
// fresco desde las colecciones fuente (lo implementa el projector).
type StockReader interface {
	ResolvedQuantity(ctx context.Context, variantID string) (int64, error)
}
