package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// VariantRepository define el puerto de persistencia remota para Variant (DIP).
type VariantRepository interface {
	Create(variant *entity.Variant) error
	GetByID(id string) (*entity.Variant, error)
	Update(variant *entity.Variant) error
	// UpdateCostPrice muta solo los campos que la entrada de stock toca:
	// costo promedio ponderado y, si newPrice no es nil, el precio de venta.
	UpdateCostPrice(variantID string, cost decimal.Decimal, newPrice *decimal.Decimal) error
	Delete(id string) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Variant, error)
}
