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

// SaleInput carrito ordenado al cierre de la venta. Cada línea trae la
// cantidad, el precio de venta y el costo unitario capturado al agregar al
// carrito.
type SaleInput struct {
	TenantID    string
	UserID      string
	CustomerID  string
	DownPayment decimal.Decimal
	Lines       []entity.SaleLine
}

// CompleteSaleUseCase cierra una venta: calcula total, saldo y utilidad, y
// persiste un único registro Sale. La merma de inventario de los bienes
// vendidos es puramente el Resolver observando la venta nueva; aquí no se
// escribe ningún decremento de stock (canal de restauración único). El
// Resolver no compuerta escrituras: dos ventas casi simultáneas de la misma
// variante pueden ambas confirmarse y sobrevender; la proyección lo señala.
type CompleteSaleUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	store        localcache.Store
	log          *logger.Logger
}

// NewCompleteSaleUseCase construye el caso de uso.
func NewCompleteSaleUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	store localcache.Store,
	log *logger.Logger,
) *CompleteSaleUseCase {
	return &CompleteSaleUseCase{saleRepo: saleRepo, customerRepo: customerRepo, store: store, log: log}
}

// CompleteSale valida el carrito, persiste la venta en el remoto y la espeja
// en la caché local. No es idempotente: doble envío crea venta doble.
func (uc *CompleteSaleUseCase) CompleteSale(ctx context.Context, in SaleInput) (*entity.Sale, error) {
	if len(in.Lines) == 0 || in.TenantID == "" {
		return nil, domain.ErrInvalidInput
	}

	total := decimal.Zero
	profit := decimal.Zero
	for _, l := range in.Lines {
		if l.Quantity <= 0 || l.SalePrice.LessThan(decimal.Zero) || l.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if l.Kind != entity.LineKindGood && l.Kind != entity.LineKindService {
			return nil, domain.ErrInvalidInput
		}
		qty := decimal.NewFromInt(l.Quantity)
		total = total.Add(l.SalePrice.Mul(qty))
		// Utilidad solo sobre bienes; costo nunca capturado queda en cero y
		// no aporta.
		if l.Kind == entity.LineKindGood {
			profit = profit.Add(l.SalePrice.Sub(l.UnitCost).Mul(qty))
		}
	}

	if in.DownPayment.LessThan(decimal.Zero) || in.DownPayment.GreaterThan(total) {
		return nil, domain.ErrInvalidInput
	}
	remaining := total.Sub(in.DownPayment)

	// Venta a crédito exige cliente registrado del tenant.
	if remaining.GreaterThan(decimal.Zero) && in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.TenantID != in.TenantID {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:              uuid.New().String(),
		TenantID:        in.TenantID,
		Date:            now,
		Lines:           in.Lines,
		Total:           total,
		DownPayment:     in.DownPayment,
		RemainingAmount: remaining,
		Profit:          profit,
		CustomerID:      in.CustomerID,
		CreatedAt:       now,
		CreatedBy:       in.UserID,
	}

	if err := uc.saleRepo.Create(sale); err != nil {
		return nil, err
	}

	m := localcache.Mirror{Store: uc.store, Log: uc.log}
	m.Upsert(ctx, entity.KindSales, sale.ID, sale)

	uc.log.Info().
		Str("tenant_id", in.TenantID).
		Str("sale_id", sale.ID).
		Str("total", total.String()).
		Str("profit", profit.String()).
		Msg("venta completada")
	return sale, nil
}
