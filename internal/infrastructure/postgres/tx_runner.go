package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción pgx: los repos que
// recibe el callback comparten la misma tx, así el decremento de stock y la
// creación de la venta se confirman (o revierten) juntos.
type TxRunner struct {
	pool     *pgxpool.Pool
	registry repository.ResourceRegistry
}

func NewTxRunner(pool *pgxpool.Pool, registry repository.ResourceRegistry) *TxRunner {
	return &TxRunner{pool: pool, registry: registry}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(
		NewItemRepository(tx, r.registry),
		NewTransactionRepository(tx),
		NewPurchaseOrderRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
