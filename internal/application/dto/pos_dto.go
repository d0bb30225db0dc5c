package dto

import "github.com/shopspring/decimal"

// IntakeLineRequest línea de entrada de stock.
type IntakeLineRequest struct {
	VariantID string           `json:"variant_id" validate:"required"`
	Quantity  int64            `json:"quantity" validate:"required"`
	UnitCost  decimal.Decimal  `json:"unit_cost"`
	NewPrice  *decimal.Decimal `json:"new_price"`
}

// IntakeRequest compra a proveedor o restock/corrección manual.
type IntakeRequest struct {
	SupplierID string              `json:"supplier_id"`
	AmountPaid decimal.Decimal     `json:"amount_paid"`
	Lines      []IntakeLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SaleLineRequest línea del carrito al cierre.
type SaleLineRequest struct {
	VariantID string          `json:"variant_id"`
	Name      string          `json:"name" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	SalePrice decimal.Decimal `json:"sale_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Kind      string          `json:"kind" validate:"required,oneof=good service"`
	Custom    bool            `json:"custom"`
}

// SaleRequest cierre de venta.
type SaleRequest struct {
	CustomerID  string            `json:"customer_id"`
	DownPayment decimal.Decimal   `json:"down_payment"`
	Lines       []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ReturnLineRequest línea devuelta, referida por índice en la venta original.
type ReturnLineRequest struct {
	LineIndex int   `json:"line_index" validate:"min=0"`
	Quantity  int64 `json:"quantity" validate:"gt=0"`
}

// ReturnRequest devolución parcial o total de una venta.
type ReturnRequest struct {
	SaleID string              `json:"sale_id" validate:"required"`
	Lines  []ReturnLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SettlementRequest abono de cliente o pago a proveedor.
type SettlementRequest struct {
	Party   string          `json:"party" validate:"required,oneof=customer supplier"`
	PartyID string          `json:"party_id" validate:"required"`
	Amount  decimal.Decimal `json:"amount"`
}
