package pos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
	"github.com/tu-usuario/pos-ledger/internal/domain/stock"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

// IntakeLine una línea de entrada: cantidad firmada y costo por variante.
// NewPrice no nil reprecia la variante además de actualizar su costo.
type IntakeLine struct {
	VariantID string
	Quantity  int64
	UnitCost  decimal.Decimal
	NewPrice  *decimal.Decimal
}

// IntakeInput entrada de stock: compra a proveedor (SupplierID no vacío),
// restock manual o corrección manual (cantidad negativa, sin proveedor).
type IntakeInput struct {
	TenantID   string
	UserID     string
	SupplierID string
	AmountPaid decimal.Decimal
	Lines      []IntakeLine
}

// IntakeResult ids generados por la operación.
type IntakeResult struct {
	PurchaseID string
	BatchIDs   []string
}

// IntakeUseCase registra entradas de stock: crea la Purchase (si hay
// proveedor) y un StockBatch por línea, y muta costo promedio/precio de cada
// variante. Remoto primero (una transacción), espejo local después. No es
// idempotente: el caller garantiza un solo envío.
type IntakeUseCase struct {
	txRunner     TxRunner
	variantRepo  repository.VariantRepository
	supplierRepo repository.SupplierRepository
	stockReader  StockReader
	store        localcache.Store
	log          *logger.Logger
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(
	txRunner TxRunner,
	variantRepo repository.VariantRepository,
	supplierRepo repository.SupplierRepository,
	stockReader StockReader,
	store localcache.Store,
	log *logger.Logger,
) *IntakeUseCase {
	return &IntakeUseCase{
		txRunner:     txRunner,
		variantRepo:  variantRepo,
		supplierRepo: supplierRepo,
		stockReader:  stockReader,
		store:        store,
		log:          log,
	}
}

// Intake valida, comete en el remoto y espeja en la caché local.
func (uc *IntakeUseCase) Intake(ctx context.Context, in IntakeInput) (*IntakeResult, error) {
	if len(in.Lines) == 0 || in.TenantID == "" {
		return nil, domain.ErrInvalidInput
	}
	isPurchase := in.SupplierID != ""
	total := decimal.Zero
	for _, l := range in.Lines {
		if l.Quantity == 0 || l.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		// Correcciones negativas solo en restock manual; una compra siempre suma.
		if isPurchase && l.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		if l.NewPrice != nil && l.NewPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(l.Quantity)))
	}
	if in.AmountPaid.LessThan(decimal.Zero) || (isPurchase && in.AmountPaid.GreaterThan(total)) {
		return nil, domain.ErrInvalidInput
	}

	if isPurchase {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil || supplier.TenantID != in.TenantID {
			return nil, domain.ErrNotFound
		}
	}

	// Variantes: existir, ser del tenant, y capturar su stock resuelto actual
	// para el costo promedio ponderado.
	variants := make(map[string]*entity.Variant, len(in.Lines))
	currentQty := make(map[string]int64, len(in.Lines))
	for _, l := range in.Lines {
		if _, ok := variants[l.VariantID]; ok {
			continue
		}
		v, err := uc.variantRepo.GetByID(l.VariantID)
		if err != nil {
			return nil, err
		}
		if v == nil || v.TenantID != in.TenantID {
			return nil, domain.ErrNotFound
		}
		qty, err := uc.stockReader.ResolvedQuantity(ctx, l.VariantID)
		if err != nil {
			return nil, err
		}
		variants[l.VariantID] = v
		currentQty[l.VariantID] = qty
	}

	now := time.Now()
	var purchase *entity.Purchase
	if isPurchase {
		purchase = &entity.Purchase{
			ID:              uuid.New().String(),
			TenantID:        in.TenantID,
			SupplierID:      in.SupplierID,
			Date:            now,
			Total:           total,
			AmountPaid:      in.AmountPaid,
			RemainingAmount: total.Sub(in.AmountPaid),
			CreatedAt:       now,
			CreatedBy:       in.UserID,
		}
	}

	batches := make([]*entity.StockBatch, 0, len(in.Lines))
	for _, l := range in.Lines {
		b := &entity.StockBatch{
			ID:        uuid.New().String(),
			TenantID:  in.TenantID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			CreatedAt: now,
			CreatedBy: in.UserID,
		}
		if purchase != nil {
			b.PurchaseID = purchase.ID
		}
		batches = append(batches, b)

		// Costo promedio y reprecio solo en entradas positivas; una corrección
		// negativa no toca el costo de la variante.
		v := variants[l.VariantID]
		if l.Quantity > 0 {
			v.UnitCost = stock.AverageCost(currentQty[l.VariantID], v.UnitCost, l.Quantity, l.UnitCost)
			if l.NewPrice != nil {
				v.Price = *l.NewPrice
			}
			v.UpdatedAt = now
			currentQty[l.VariantID] += l.Quantity
		}
	}

	err := uc.txRunner.RunIntake(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		batchRepo repository.StockBatchRepository,
		variantRepo repository.VariantRepository,
	) error {
		if purchase != nil {
			if err := purchaseRepo.Create(purchase); err != nil {
				return err
			}
		}
		for _, b := range batches {
			if err := batchRepo.Create(b); err != nil {
				return err
			}
		}
		for _, l := range in.Lines {
			if l.Quantity <= 0 {
				continue
			}
			v := variants[l.VariantID]
			if err := variantRepo.UpdateCostPrice(v.ID, v.UnitCost, l.NewPrice); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Espejo local, mejor esfuerzo: la divergencia se reconcilia en el próximo sync.
	m := localcache.Mirror{Store: uc.store, Log: uc.log}
	if purchase != nil {
		m.Upsert(ctx, entity.KindPurchases, purchase.ID, purchase)
	}
	result := &IntakeResult{BatchIDs: make([]string, 0, len(batches))}
	if purchase != nil {
		result.PurchaseID = purchase.ID
	}
	for _, b := range batches {
		m.Upsert(ctx, entity.KindStockBatches, b.ID, b)
		result.BatchIDs = append(result.BatchIDs, b.ID)
	}
	for _, v := range variants {
		m.Upsert(ctx, entity.KindVariants, v.ID, v)
	}

	uc.log.Info().
		Str("tenant_id", in.TenantID).
		Str("purchase_id", result.PurchaseID).
		Int("batches", len(batches)).
		Msg("entrada de stock registrada")
	return result, nil
}
