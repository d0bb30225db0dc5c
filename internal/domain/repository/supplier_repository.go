package repository

import (
	"context"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia remota para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Supplier, error)
}
