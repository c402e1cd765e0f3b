package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TransactionRepository puerto de persistencia para Transaction.
// Las transacciones son inmutables: solo Create y lecturas.
type TransactionRepository interface {
	// Create persiste la transacción con sus líneas serializadas.
	// Retorna domain.ErrDuplicate si la clave de idempotencia ya existe.
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id, section string) (*entity.Transaction, error)
	// GetByIdempotencyKey nil si no existe (lo usa el flujo de venta para
	// reintentos seguros tras un timeout).
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.Transaction, error)
	ListBySection(ctx context.Context, section string, limit, offset int) ([]*entity.Transaction, error)
}
