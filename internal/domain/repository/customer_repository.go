package repository

import (
	"context"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia remota para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Customer, error)
}
