package repository

import (
	"context"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// StockBatchRepository define el puerto para el ledger de entradas de stock.
// Append-only: no hay Update ni Delete.
type StockBatchRepository interface {
	Create(batch *entity.StockBatch) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.StockBatch, error)
}
