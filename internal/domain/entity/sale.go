package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de línea de venta.
const (
	LineKindGood    = "good"    // bien físico, afecta stock
	LineKindService = "service" // servicio, nunca afecta stock
)

// SaleLine es una línea del carrito, embebida en la venta. UnitCost se captura
// al agregar al carrito; si nunca se capturó queda en cero y no aporta costo a
// la utilidad. Custom marca ítems ad-hoc escritos a mano en caja, que tampoco
// afectan stock.
type SaleLine struct {
	VariantID string          `json:"variant_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	SalePrice decimal.Decimal `json:"sale_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Kind      string          `json:"kind"` // good | service
	Custom    bool            `json:"custom"`
}

// AffectsStock indica si la línea participa en la proyección de stock:
// solo bienes no ad-hoc.
func (l SaleLine) AffectsStock() bool {
	return l.Kind == LineKindGood && !l.Custom
}

// Sale es el registro de una venta completada: lista ordenada de líneas,
// totales y utilidad calculada al cierre. Append-only una vez creada, salvo
// DownPayment/RemainingAmount que muta la liquidación de deuda.
type Sale struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	Date            time.Time       `json:"date"`
	Lines           []SaleLine      `json:"lines"`
	Total           decimal.Decimal `json:"total"`
	DownPayment     decimal.Decimal `json:"down_payment"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"` // total - down_payment
	Profit          decimal.Decimal `json:"profit"`
	CustomerID      string          `json:"customer_id"` // vacío = venta de mostrador
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       string          `json:"created_by"`
}
