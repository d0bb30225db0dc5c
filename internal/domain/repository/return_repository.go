package repository

import (
	"context"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// ReturnRepository define el puerto para el ledger de devoluciones. Append-only.
type ReturnRepository interface {
	Create(ret *entity.Return) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Return, error)
	// ListBySale devuelve las devoluciones previas de una venta (para validar
	// que no se devuelva más de lo vendido).
	ListBySale(saleID string) ([]*entity.Return, error)
}
