package memory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback directo, sin transacción real: el backend en
// memoria no ofrece rollback. Reproduce a propósito la consistencia débil del
// contrato (una venta interrumpida puede dejar decrementos sin transacción),
// que el flujo de venta mitiga con la clave de idempotencia.
type TxRunner struct {
	b *Backend
}

// NewTxRunner construye el runner.
func NewTxRunner(b *Backend) *TxRunner {
	return &TxRunner{b: b}
}

// Run invoca fn con las vistas del backend.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(NewItemRepository(r.b), NewTransactionRepository(r.b), NewPurchaseOrderRepository(r.b))
}
