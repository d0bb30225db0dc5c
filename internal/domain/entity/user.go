package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin  = "admin"
	RoleCajero = "cajero"
)

// User usuario del sistema, siempre atado a un tenant.
type User struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"` // active | disabled
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
