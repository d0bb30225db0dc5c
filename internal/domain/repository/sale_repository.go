package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// SaleRepository define el puerto para el ledger de ventas. Las ventas son
// append-only salvo los campos de pago, que muta la liquidación de deuda.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Sale, error)
	// ListUnpaidByCustomer devuelve las ventas con saldo pendiente del cliente,
	// ordenadas por fecha ascendente (liquidación oldest-first).
	ListUnpaidByCustomer(customerID string) ([]*entity.Sale, error)
	// UpdatePayment fija down_payment y remaining_amount.
	UpdatePayment(saleID string, downPayment, remaining decimal.Decimal) error
	// SumRemainingByCustomer suma el saldo pendiente del cliente (guardia de borrado).
	SumRemainingByCustomer(customerID string) (decimal.Decimal, error)
}
