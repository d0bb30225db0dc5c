package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch es un evento de entrada de inventario: cantidad firmada y costo
// unitario para una variante. Append-only; nunca se actualiza ni se borra en
// el flujo normal. Cantidad negativa = corrección manual.
type StockBatch struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenant_id"`
	VariantID  string          `json:"variant_id"`
	PurchaseID string          `json:"purchase_id"` // vacío en restock manual
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	CreatedAt  time.Time       `json:"created_at"`
	CreatedBy  string          `json:"created_by"`
}
