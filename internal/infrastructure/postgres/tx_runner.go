package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/pos-ledger/internal/application/pos"
	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
)

var _ pos.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con repos
// atados a la tx. Cubre las operaciones compuestas del pipeline: entrada de
// stock (compra + lotes + variantes) y liquidación de deuda.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunIntake inicia una transacción con los repos de la entrada de stock y hace
// Commit o Rollback según el resultado de fn.
func (r *TxRunner) RunIntake(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	batchRepo repository.StockBatchRepository,
	variantRepo repository.VariantRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPurchaseRepository(tx), NewStockBatchRepository(tx), NewVariantRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSettlement inicia una transacción con los repos de la liquidación de
// deuda y hace Commit o Rollback según el resultado de fn.
func (r *TxRunner) RunSettlement(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSaleRepository(tx), NewPurchaseRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
