package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// PurchaseRepository define el puerto para compras a proveedor.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Purchase, error)
	// ListUnpaidBySupplier devuelve compras con saldo pendiente, fecha ascendente.
	ListUnpaidBySupplier(supplierID string) ([]*entity.Purchase, error)
	// UpdatePayment fija amount_paid y remaining_amount.
	UpdatePayment(purchaseID string, amountPaid, remaining decimal.Decimal) error
	// SumRemainingBySupplier suma el saldo pendiente con el proveedor (guardia de borrado).
	SumRemainingBySupplier(supplierID string) (decimal.Decimal, error)
}
