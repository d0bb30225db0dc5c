package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// Create persiste una variante nueva.
func (r *VariantRepo) Create(variant *entity.Variant) error {
	query := `
		INSERT INTO variants (id, product_id, tenant_id, name, barcode, price, unit_cost, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.ProductID, variant.TenantID, variant.Name, variant.Barcode,
		variant.Price, variant.UnitCost, variant.LowStockThreshold,
		variant.CreatedAt, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID. Devuelve (nil, nil) si no existe.
func (r *VariantRepo) GetByID(id string) (*entity.Variant, error) {
	query := `
		SELECT id, product_id, tenant_id, name, COALESCE(barcode, ''), price, unit_cost, low_stock_threshold, created_at, updated_at
		FROM variants WHERE id = $1`
	var v entity.Variant
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.ProductID, &v.TenantID, &v.Name, &v.Barcode,
		&v.Price, &v.UnitCost, &v.LowStockThreshold, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// Update muta los campos editables de catálogo; el costo va por UpdateCostPrice.
func (r *VariantRepo) Update(variant *entity.Variant) error {
	query := `
		UPDATE variants
		SET name = $2, barcode = NULLIF($3, ''), price = $4, low_stock_threshold = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.Name, variant.Barcode, variant.Price,
		variant.LowStockThreshold, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCostPrice muta solo lo que toca la entrada de stock: costo promedio y,
// si newPrice no es nil, el precio de venta.
func (r *VariantRepo) UpdateCostPrice(variantID string, cost decimal.Decimal, newPrice *decimal.Decimal) error {
	query := `
		UPDATE variants
		SET unit_cost = $2, price = COALESCE($3, price), updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, variantID, cost, newPrice)
	if err != nil {
		return fmt.Errorf("update variant cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la variante del catálogo.
func (r *VariantRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM variants WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConstraintViolation
		}
		return fmt.Errorf("delete variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTenant devuelve el conjunto completo del tenant.
func (r *VariantRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Variant, error) {
	query := `
		SELECT id, product_id, tenant_id, name, COALESCE(barcode, ''), price, unit_cost, low_stock_threshold, created_at, updated_at
		FROM variants WHERE tenant_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var out []*entity.Variant
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.TenantID, &v.Name, &v.Barcode,
			&v.Price, &v.UnitCost, &v.LowStockThreshold, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
