package repository

import (
	"context"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia remota para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Product, error)
}
