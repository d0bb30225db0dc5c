package pos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

// ReturnLineInput referencia una línea de la venta original por índice y la
// cantidad a devolver de esa línea.
type ReturnLineInput struct {
	LineIndex int
	Quantity  int64
}

// ReturnInput devolución de un subconjunto de líneas de una venta previa.
type ReturnInput struct {
	TenantID string
	UserID   string
	SaleID   string
	Lines    []ReturnLineInput
}

// ProcessReturnUseCase registra devoluciones: calcula reembolso y utilidad
// perdida al precio/costo con que se vendió, y persiste un único Return. La
// restauración de stock es puramente el Resolver observando la devolución; no
// se escribe ningún lote compensatorio (canal de restauración único).
type ProcessReturnUseCase struct {
	saleRepo   repository.SaleRepository
	returnRepo repository.ReturnRepository
	store      localcache.Store
	log        *logger.Logger
}

// NewProcessReturnUseCase construye el caso de uso.
func NewProcessReturnUseCase(
	saleRepo repository.SaleRepository,
	returnRepo repository.ReturnRepository,
	store localcache.Store,
	log *logger.Logger,
) *ProcessReturnUseCase {
	return &ProcessReturnUseCase{saleRepo: saleRepo, returnRepo: returnRepo, store: store, log: log}
}

// ProcessReturn valida contra lo vendido menos lo ya devuelto, persiste en el
// remoto y espeja en la caché local. No es idempotente.
func (uc *ProcessReturnUseCase) ProcessReturn(ctx context.Context, in ReturnInput) (*entity.Return, error) {
	if len(in.Lines) == 0 || in.TenantID == "" || in.SaleID == "" {
		return nil, domain.ErrInvalidInput
	}

	sale, err := uc.saleRepo.GetByID(in.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.TenantID != in.TenantID {
		return nil, domain.ErrNotFound
	}

	// Lo ya devuelto de esta venta, acumulado por variante.
	previous, err := uc.returnRepo.ListBySale(in.SaleID)
	if err != nil {
		return nil, err
	}
	returnedByVariant := make(map[string]int64)
	for _, prev := range previous {
		for _, l := range prev.Lines {
			returnedByVariant[l.VariantID] += l.Quantity
		}
	}
	soldByVariant := make(map[string]int64)
	for _, l := range sale.Lines {
		soldByVariant[l.VariantID] += l.Quantity
	}

	now := time.Now()
	refund := decimal.Zero
	profitLost := decimal.Zero
	lines := make([]entity.ReturnLine, 0, len(in.Lines))
	for _, rl := range in.Lines {
		if rl.LineIndex < 0 || rl.LineIndex >= len(sale.Lines) || rl.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		sold := sale.Lines[rl.LineIndex]
		if returnedByVariant[sold.VariantID]+rl.Quantity > soldByVariant[sold.VariantID] {
			return nil, domain.ErrInvalidInput
		}
		returnedByVariant[sold.VariantID] += rl.Quantity

		qty := decimal.NewFromInt(rl.Quantity)
		refund = refund.Add(sold.SalePrice.Mul(qty))
		if sold.Kind == entity.LineKindGood {
			profitLost = profitLost.Add(sold.SalePrice.Sub(sold.UnitCost).Mul(qty))
		}
		lines = append(lines, entity.ReturnLine{
			VariantID: sold.VariantID,
			Name:      sold.Name,
			Quantity:  rl.Quantity,
			SalePrice: sold.SalePrice,
			UnitCost:  sold.UnitCost,
			Kind:      sold.Kind,
			Custom:    sold.Custom,
		})
	}

	ret := &entity.Return{
		ID:           uuid.New().String(),
		TenantID:     in.TenantID,
		SaleID:       sale.ID,
		Date:         now,
		Lines:        lines,
		RefundAmount: refund,
		ProfitLost:   profitLost,
		CreatedAt:    now,
		CreatedBy:    in.UserID,
	}

	if err := uc.returnRepo.Create(ret); err != nil {
		return nil, err
	}

	m := localcache.Mirror{Store: uc.store, Log: uc.log}
	m.Upsert(ctx, entity.KindReturns, ret.ID, ret)

	uc.log.Info().
		Str("tenant_id", in.TenantID).
		Str("return_id", ret.ID).
		Str("sale_id", sale.ID).
		Str("refund", refund.String()).
		Msg("devolución registrada")
	return ret, nil
}
