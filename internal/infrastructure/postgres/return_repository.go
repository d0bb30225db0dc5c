package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación del ledger de devoluciones sobre PostgreSQL.
// Append-only, líneas embebidas como JSONB igual que las ventas.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, tenant_id, sale_id, date, lines, refund_amount, profit_lost, created_at, created_by`

// Create persiste una devolución nueva.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	lines, err := json.Marshal(ret.Lines)
	if err != nil {
		return fmt.Errorf("marshal return lines: %w", err)
	}
	query := `
		INSERT INTO returns (` + returnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		ret.ID, ret.TenantID, ret.SaleID, ret.Date, lines,
		ret.RefundAmount, ret.ProfitLost, ret.CreatedAt, ret.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

// ListByTenant devuelve el ledger completo del tenant.
func (r *ReturnRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE tenant_id = $1 ORDER BY date`
	return r.list(ctx, query, tenantID)
}

// ListBySale devuelve las devoluciones previas de una venta.
func (r *ReturnRepo) ListBySale(saleID string) ([]*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE sale_id = $1 ORDER BY date`
	return r.list(context.Background(), query, saleID)
}

func (r *ReturnRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Return, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var out []*entity.Return
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		out = append(out, ret)
	}
	return out, rows.Err()
}

func scanReturn(row pgx.Row) (*entity.Return, error) {
	var ret entity.Return
	var lines []byte
	err := row.Scan(
		&ret.ID, &ret.TenantID, &ret.SaleID, &ret.Date, &lines,
		&ret.RefundAmount, &ret.ProfitLost, &ret.CreatedAt, &ret.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &ret.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal return lines: %w", err)
	}
	return &ret, nil
}
