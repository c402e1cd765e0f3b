package memory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo vista de transacciones sobre el backend en memoria.
type TransactionRepo struct {
	b *Backend
}

// NewTransactionRepository construye la vista.
func NewTransactionRepository(b *Backend) *TransactionRepo {
	return &TransactionRepo{b: b}
}

// Create inserta la transacción; clave de idempotencia repetida -> ErrDuplicate.
func (r *TransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	if tx.IdempotencyKey != "" {
		if _, exists := r.b.txByKey[tx.IdempotencyKey]; exists {
			return domain.ErrDuplicate
		}
	}
	c := *tx
	c.Lines = append([]entity.TransactionLine(nil), tx.Lines...)
	r.b.transactions[tx.ID] = &c
	if tx.IdempotencyKey != "" {
		r.b.txByKey[tx.IdempotencyKey] = tx.ID
	}
	return nil
}

// GetByID nil si no existe o pertenece a otra sección.
func (r *TransactionRepo) GetByID(_ context.Context, id, section string) (*entity.Transaction, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	tx, ok := r.b.transactions[id]
	if !ok || tx.Section != section {
		return nil, nil
	}
	return copyTransaction(tx), nil
}

// GetByIdempotencyKey nil si la clave no fue aplicada.
func (r *TransactionRepo) GetByIdempotencyKey(_ context.Context, key string) (*entity.Transaction, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	id, ok := r.b.txByKey[key]
	if !ok {
		return nil, nil
	}
	return copyTransaction(r.b.transactions[id]), nil
}

// ListBySection más recientes primero.
func (r *TransactionRepo) ListBySection(_ context.Context, section string, limit, offset int) ([]*entity.Transaction, error) {
	r.b.mu.RLock()
	all := make([]*entity.Transaction, 0)
	for _, tx := range r.b.transactions {
		if tx.Section == section {
			all = append(all, copyTransaction(tx))
		}
	}
	r.b.mu.RUnlock()

	sortTransactionsDesc(all)
	if offset >= len(all) {
		return []*entity.Transaction{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func copyTransaction(tx *entity.Transaction) *entity.Transaction {
	c := *tx
	c.Lines = append([]entity.TransactionLine(nil), tx.Lines...)
	return &c
}
