package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, invoice_number, ts, type, lines, total_amount,
	payment_method, customer_name, section, performed_by, idempotency_key`

// TransactionRepo implementación del puerto TransactionRepository sobre
// PostgreSQL. Las líneas viajan como JSONB: son inmutables y siempre se leen
// completas junto a la transacción.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta la transacción; clave de idempotencia repetida -> ErrDuplicate.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	lines, err := json.Marshal(tx.Lines)
	if err != nil {
		return fmt.Errorf("marshal transaction lines: %w", err)
	}
	query := `
		INSERT INTO transactions (id, invoice_number, ts, type, lines, total_amount,
			payment_method, customer_name, section, performed_by, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		tx.ID, tx.InvoiceNumber, tx.Timestamp, tx.Type, lines, tx.TotalAmount,
		tx.PaymentMethod, tx.CustomerName, tx.Section, tx.PerformedBy, tx.IdempotencyKey,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID nil si no existe en la sección.
func (r *TransactionRepo) GetByID(ctx context.Context, id, section string) (*entity.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1 AND section = $2`, transactionColumns)
	tx, err := scanTransaction(r.q.QueryRow(ctx, query, id, section))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// GetByIdempotencyKey nil si la clave no fue aplicada.
func (r *TransactionRepo) GetByIdempotencyKey(ctx context.Context, key string) (*entity.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE idempotency_key = $1`, transactionColumns)
	tx, err := scanTransaction(r.q.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by key: %w", err)
	}
	return tx, nil
}

// ListBySection más recientes primero.
func (r *TransactionRepo) ListBySection(ctx context.Context, section string, limit, offset int) ([]*entity.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE section = $1
		ORDER BY ts DESC, id
		LIMIT $2 OFFSET $3`, transactionColumns)
	rows, err := r.q.Query(ctx, query, section, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var tx entity.Transaction
	var lines []byte
	err := row.Scan(
		&tx.ID, &tx.InvoiceNumber, &tx.Timestamp, &tx.Type, &lines, &tx.TotalAmount,
		&tx.PaymentMethod, &tx.CustomerName, &tx.Section, &tx.PerformedBy, &tx.IdempotencyKey,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &tx.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal transaction lines: %w", err)
	}
	return &tx, nil
}
