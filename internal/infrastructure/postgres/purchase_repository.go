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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, tenant_id, supplier_id, date, total, amount_paid, remaining_amount, created_at, created_by`

// Create persiste una compra nueva.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.TenantID, purchase.SupplierID, purchase.Date,
		purchase.Total, purchase.AmountPaid, purchase.RemainingAmount,
		purchase.CreatedAt, purchase.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID. Devuelve (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.TenantID, &p.SupplierID, &p.Date,
		&p.Total, &p.AmountPaid, &p.RemainingAmount, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// ListByTenant devuelve el conjunto completo del tenant.
func (r *PurchaseRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE tenant_id = $1 ORDER BY date`
	return r.list(ctx, query, tenantID)
}

// ListUnpaidBySupplier devuelve compras con saldo pendiente, fecha ascendente
// (orden que exige la liquidación oldest-first).
func (r *PurchaseRepo) ListUnpaidBySupplier(supplierID string) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases WHERE supplier_id = $1 AND remaining_amount > 0
		ORDER BY date ASC`
	return r.list(context.Background(), query, supplierID)
}

// UpdatePayment fija amount_paid y remaining_amount.
func (r *PurchaseRepo) UpdatePayment(purchaseID string, amountPaid, remaining decimal.Decimal) error {
	query := `UPDATE purchases SET amount_paid = $2, remaining_amount = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, purchaseID, amountPaid, remaining)
	if err != nil {
		return fmt.Errorf("update purchase payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumRemainingBySupplier suma el saldo pendiente con el proveedor.
func (r *PurchaseRepo) SumRemainingBySupplier(supplierID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(remaining_amount), 0) FROM purchases WHERE supplier_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, supplierID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum purchase remaining: %w", err)
	}
	return sum, nil
}

func (r *PurchaseRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var out []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.SupplierID, &p.Date,
			&p.Total, &p.AmountPaid, &p.RemainingAmount, &p.CreatedAt, &p.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
