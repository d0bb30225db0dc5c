package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant es la unidad vendible de un producto (talla/color, presentación).
// La identidad es inmutable; UnitCost y Price los muta la entrada de stock
// (costo promedio ponderado y reprecio opcional). Un servicio tiene una
// variante única implícita.
type Variant struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	TenantID          string          `json:"tenant_id"`
	Name              string          `json:"name"`
	Barcode           string          `json:"barcode"`
	Price             decimal.Decimal `json:"price"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
