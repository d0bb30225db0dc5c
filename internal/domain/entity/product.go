package entity

import "time"

// Product representa un producto del catálogo. Las unidades vendibles son sus
// variantes; el producto en sí no lleva precio ni stock.
type Product struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
