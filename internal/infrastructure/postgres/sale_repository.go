package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del ledger de ventas sobre PostgreSQL. Las líneas
// del carrito viajan como JSONB en la misma fila: la venta es un solo registro
// append-only y el Resolver la consume completa.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, tenant_id, date, lines, total, down_payment, remaining_amount, profit, COALESCE(customer_id, ''), created_at, created_by`

// Create persiste una venta nueva con sus líneas embebidas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	lines, err := json.Marshal(sale.Lines)
	if err != nil {
		return fmt.Errorf("marshal sale lines: %w", err)
	}
	query := `
		INSERT INTO sales (id, tenant_id, date, lines, total, down_payment, remaining_amount, profit, customer_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		sale.ID, sale.TenantID, sale.Date, lines,
		sale.Total, sale.DownPayment, sale.RemainingAmount, sale.Profit,
		sale.CustomerID, sale.CreatedAt, sale.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListByTenant devuelve el ledger completo del tenant.
func (r *SaleRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE tenant_id = $1 ORDER BY date`
	return r.list(ctx, query, tenantID)
}

// ListUnpaidByCustomer devuelve las ventas con saldo del cliente, fecha
// ascendente (orden que exige la liquidación oldest-first).
func (r *SaleRepo) ListUnpaidByCustomer(customerID string) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales WHERE customer_id = $1 AND remaining_amount > 0
		ORDER BY date ASC`
	return r.list(context.Background(), query, customerID)
}

// UpdatePayment fija down_payment y remaining_amount.
func (r *SaleRepo) UpdatePayment(saleID string, downPayment, remaining decimal.Decimal) error {
	query := `UPDATE sales SET down_payment = $2, remaining_amount = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, saleID, downPayment, remaining)
	if err != nil {
		return fmt.Errorf("update sale payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumRemainingByCustomer suma el saldo pendiente del cliente.
func (r *SaleRepo) SumRemainingByCustomer(customerID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(remaining_amount), 0) FROM sales WHERE customer_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, customerID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum sale remaining: %w", err)
	}
	return sum, nil
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var lines []byte
	err := row.Scan(
		&s.ID, &s.TenantID, &s.Date, &lines,
		&s.Total, &s.DownPayment, &s.RemainingAmount, &s.Profit,
		&s.CustomerID, &s.CreatedAt, &s.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &s.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal sale lines: %w", err)
	}
	return &s, nil
}
