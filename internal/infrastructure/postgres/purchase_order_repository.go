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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = `id, po_number, created_at, status, lines, estimated_cost,
	vendor, notes, created_by, approved_by, received_at, section`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre
// PostgreSQL. Tabla con clave por id: la transición de estado es un UPDATE
// condicionado al estado persistido, así se conserva "exactamente un registro
// vivo por orden" sin delete+insert.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta la orden.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	lines, err := json.Marshal(po.Lines)
	if err != nil {
		return fmt.Errorf("marshal po lines: %w", err)
	}
	query := `
		INSERT INTO purchase_orders (id, po_number, created_at, status, lines, estimated_cost,
			vendor, notes, created_by, approved_by, received_at, section)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		po.ID, po.PONumber, po.CreatedAt, po.Status, lines, po.EstimatedCost,
		po.Vendor, po.Notes, po.CreatedBy, po.ApprovedBy, po.ReceivedAt, po.Section,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchase_orders WHERE id = $1`, poColumns)
	po, err := scanPO(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return po, nil
}

// List por sección y estado opcional, más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, section, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM purchase_orders
		WHERE ($1 = '' OR section = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`, poColumns)
	rows, err := r.q.Query(ctx, query, section, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPO(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

// Update reemplaza la orden solo si el estado persistido coincide con
// currentStatus. Cero filas afectadas con la orden existente = ErrConflict
// (el estado cambió por debajo del caller).
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder, currentStatus string) error {
	lines, err := json.Marshal(po.Lines)
	if err != nil {
		return fmt.Errorf("marshal po lines: %w", err)
	}
	query := `
		UPDATE purchase_orders SET status = $3, lines = $4, estimated_cost = $5,
			vendor = $6, notes = $7, approved_by = $8, received_at = $9
		WHERE id = $1 AND status = $2`
	cmd, err := r.q.Exec(ctx, query,
		po.ID, currentStatus, po.Status, lines, po.EstimatedCost,
		po.Vendor, po.Notes, po.ApprovedBy, po.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		exists, err := r.GetByID(ctx, po.ID)
		if err != nil {
			return err
		}
		if exists == nil {
			return domain.ErrResourceNotFound
		}
		return domain.ErrConflict
	}
	return nil
}

func scanPO(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var lines []byte
	err := row.Scan(
		&po.ID, &po.PONumber, &po.CreatedAt, &po.Status, &lines, &po.EstimatedCost,
		&po.Vendor, &po.Notes, &po.CreatedBy, &po.ApprovedBy, &po.ReceivedAt, &po.Section,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &po.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal po lines: %w", err)
	}
	return &po, nil
}
