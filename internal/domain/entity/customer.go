package entity

import "time"

// Customer cliente del tenant. Puede tener ventas a crédito (saldo pendiente);
// no se puede borrar mientras deba.
type Customer struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
