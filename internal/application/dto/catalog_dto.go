package dto

import "github.com/shopspring/decimal"

// CategoryRequest alta o renombre de categoría.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// ProductRequest alta o edición de producto.
type ProductRequest struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
}

// VariantRequest alta o edición de variante. El costo unitario no es editable
// desde aquí: lo fija la entrada de stock.
type VariantRequest struct {
	ProductID         string          `json:"product_id" validate:"required"`
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Barcode           string          `json:"barcode" validate:"max=64"`
	Price             decimal.Decimal `json:"price"`
	LowStockThreshold int64           `json:"low_stock_threshold" validate:"min=0"`
}

// PartyRequest alta o edición de cliente o proveedor.
type PartyRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Phone string `json:"phone" validate:"max=32"`
}
