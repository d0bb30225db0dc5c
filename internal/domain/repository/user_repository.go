package repository

import (
	"context"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// UserRepository define el puerto de persistencia remota para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.User, error)
}
