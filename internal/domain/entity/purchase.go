package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase agrupa uno o más StockBatches comprados a un proveedor, con las
// condiciones de pago. AmountPaid/RemainingAmount los muta la liquidación de
// deuda con el proveedor; el resto es append-only.
type Purchase struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	SupplierID      string          `json:"supplier_id"`
	Date            time.Time       `json:"date"`
	Total           decimal.Decimal `json:"total"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       string          `json:"created_by"`
}
