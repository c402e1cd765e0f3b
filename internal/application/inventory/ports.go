package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repos atados a una misma transacción del
// backend. El adaptador de PostgreSQL da atomicidad real entre el decremento
// de items y la creación de la transacción; el contrato general sigue siendo
// de consistencia débil (ver clave de idempotencia en el flujo de venta) y los
// adaptadores sin transacciones pueden ejecutar el callback directo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		txRepo repository.TransactionRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}
