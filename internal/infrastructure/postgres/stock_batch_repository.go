package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación del ledger de entradas de stock sobre
// PostgreSQL. Append-only: el puerto no expone Update ni Delete.
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

// Create persiste un lote (cantidad firmada; negativa = corrección manual).
func (r *StockBatchRepo) Create(batch *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (id, tenant_id, variant_id, purchase_id, quantity, unit_cost, created_at, created_by)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.TenantID, batch.VariantID, batch.PurchaseID,
		batch.Quantity, batch.UnitCost, batch.CreatedAt, batch.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock batch: %w", err)
	}
	return nil
}

// ListByTenant devuelve el ledger completo del tenant, en orden de creación.
func (r *StockBatchRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.StockBatch, error) {
	query := `
		SELECT id, tenant_id, variant_id, COALESCE(purchase_id, ''), quantity, unit_cost, created_at, created_by
		FROM stock_batches WHERE tenant_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list stock batches: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		if err := rows.Scan(
			&b.ID, &b.TenantID, &b.VariantID, &b.PurchaseID,
			&b.Quantity, &b.UnitCost, &b.CreatedAt, &b.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
