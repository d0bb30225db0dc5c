package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnLine es una línea devuelta: subconjunto de una línea vendida, con el
// precio y costo con que se vendió originalmente.
type ReturnLine struct {
	VariantID string          `json:"variant_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	SalePrice decimal.Decimal `json:"sale_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Kind      string          `json:"kind"` // good | service
	Custom    bool            `json:"custom"`
}

// AffectsStock indica si la línea devuelta restaura stock: solo bienes no ad-hoc.
func (l ReturnLine) AffectsStock() bool {
	return l.Kind == LineKindGood && !l.Custom
}

// Return registra la devolución de un subconjunto de líneas de una venta
// previa: monto reembolsado y utilidad perdida. Append-only.
type Return struct {
	ID           string          `json:"id"`
	TenantID     string          `json:"tenant_id"`
	SaleID       string          `json:"sale_id"`
	Date         time.Time       `json:"date"`
	Lines        []ReturnLine    `json:"lines"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	ProfitLost   decimal.Decimal `json:"profit_lost"`
	CreatedAt    time.Time       `json:"created_at"`
	CreatedBy    string          `json:"created_by"`
}
