package pos

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

// SettleDebtUseCase liquida deudas aplicando el pago sobre los registros
// pendientes más viejos primero (fecha ascendente), decrementando
// remaining_amount hasta agotar el monto. Estrategia única: nunca se crean
// pseudo-registros negativos. Un pago mayor que la deuda total se rechaza.
type SettleDebtUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	store        localcache.Store
	log          *logger.Logger
}

// NewSettleDebtUseCase construye el caso de uso.
func NewSettleDebtUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	store localcache.Store,
	log *logger.Logger,
) *SettleDebtUseCase {
	return &SettleDebtUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		store:        store,
		log:          log,
	}
}

// SettleCustomerDebt aplica un abono del cliente sobre sus ventas con saldo,
// oldest-first. Devuelve las ventas actualizadas.
func (uc *SettleDebtUseCase) SettleCustomerDebt(ctx context.Context, tenantID, customerID string, amount decimal.Decimal) ([]*entity.Sale, error) {
	if tenantID == "" || customerID == "" || amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}

	unpaid, err := uc.saleRepo.ListUnpaidByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	outstanding := decimal.Zero
	for _, s := range unpaid {
		outstanding = outstanding.Add(s.RemainingAmount)
	}
	if amount.GreaterThan(outstanding) {
		return nil, domain.ErrInvalidInput
	}

	// Plan de aplicación oldest-first (el repo ya ordena fecha ascendente).
	left := amount
	var updated []*entity.Sale
	for _, s := range unpaid {
		if left.LessThanOrEqual(decimal.Zero) {
			break
		}
		pay := decimal.Min(left, s.RemainingAmount)
		s.DownPayment = s.DownPayment.Add(pay)
		s.RemainingAmount = s.RemainingAmount.Sub(pay)
		left = left.Sub(pay)
		updated = append(updated, s)
	}

	err = uc.txRunner.RunSettlement(ctx, func(saleRepo repository.SaleRepository, _ repository.PurchaseRepository) error {
		for _, s := range updated {
			if err := saleRepo.UpdatePayment(s.ID, s.DownPayment, s.RemainingAmount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m := localcache.Mirror{Store: uc.store, Log: uc.log}
	for _, s := range updated {
		m.Upsert(ctx, entity.KindSales, s.ID, s)
	}

	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("customer_id", customerID).
		Str("amount", amount.String()).
		Int("sales_touched", len(updated)).
		Msg("abono de cliente aplicado")
	return updated, nil
}

// SettleSupplierDebt aplica un pago al proveedor sobre sus compras con saldo,
// oldest-first. Devuelve las compras actualizadas.
func (uc *SettleDebtUseCase) SettleSupplierDebt(ctx context.Context, tenantID, supplierID string, amount decimal.Decimal) ([]*entity.Purchase, error) {
	if tenantID == "" || supplierID == "" || amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}

	unpaid, err := uc.purchaseRepo.ListUnpaidBySupplier(supplierID)
	if err != nil {
		return nil, err
	}
	outstanding := decimal.Zero
	for _, p := range unpaid {
		outstanding = outstanding.Add(p.RemainingAmount)
	}
	if amount.GreaterThan(outstanding) {
		return nil, domain.ErrInvalidInput
	}

	left := amount
	var updated []*entity.Purchase
	for _, p := range unpaid {
		if left.LessThanOrEqual(decimal.Zero) {
			break
		}
		pay := decimal.Min(left, p.RemainingAmount)
		p.AmountPaid = p.AmountPaid.Add(pay)
		p.RemainingAmount = p.RemainingAmount.Sub(pay)
		left = left.Sub(pay)
		updated = append(updated, p)
	}

	err = uc.txRunner.RunSettlement(ctx, func(_ repository.SaleRepository, purchaseRepo repository.PurchaseRepository) error {
		for _, p := range updated {
			if err := purchaseRepo.UpdatePayment(p.ID, p.AmountPaid, p.RemainingAmount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m := localcache.Mirror{Store: uc.store, Log: uc.log}
	for _, p := range updated {
		m.Upsert(ctx, entity.KindPurchases, p.ID, p)
	}

	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("supplier_id", supplierID).
		Str("amount", amount.String()).
		Int("purchases_touched", len(updated)).
		Msg("pago a proveedor aplicado")
	return updated, nil
}
