package repository

import (
	"context"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia remota para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
	// ListByTenant devuelve el conjunto completo del tenant (fetch del sync full-replace).
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Category, error)
}
