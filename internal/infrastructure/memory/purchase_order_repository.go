package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo vista de órdenes de compra sobre el backend en memoria.
type PurchaseOrderRepo struct {
	b *Backend
}

// NewPurchaseOrderRepository construye la vista.
func NewPurchaseOrderRepository(b *Backend) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{b: b}
}

// Create inserta la orden.
func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	r.b.orders[po.ID] = copyPO(po)
	return nil
}

// GetByID nil si no existe.
func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	po, ok := r.b.orders[id]
	if !ok {
		return nil, nil
	}
	return copyPO(po), nil
}

// List por sección y estado opcional, más recientes primero.
func (r *PurchaseOrderRepo) List(_ context.Context, section, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.b.mu.RLock()
	all := make([]*entity.PurchaseOrder, 0)
	for _, po := range r.b.orders {
		if section != "" && po.Section != section {
			continue
		}
		if status != "" && po.Status != status {
			continue
		}
		all = append(all, copyPO(po))
	}
	r.b.mu.RUnlock()

	sort.Slice(all, func(a, b int) bool {
		if all[a].CreatedAt.Equal(all[b].CreatedAt) {
			return all[a].ID < all[b].ID
		}
		return all[a].CreatedAt.After(all[b].CreatedAt)
	})
	if offset >= len(all) {
		return []*entity.PurchaseOrder{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Update reemplazo condicionado al estado persistido (replace-by-key):
// garantiza exactamente un registro vivo por id tras la operación.
func (r *PurchaseOrderRepo) Update(_ context.Context, po *entity.PurchaseOrder, currentStatus string) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	current, ok := r.b.orders[po.ID]
	if !ok {
		return domain.ErrResourceNotFound
	}
	if current.Status != currentStatus {
		return domain.ErrConflict
	}
	r.b.orders[po.ID] = copyPO(po)
	return nil
}

func copyPO(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *po
	c.Lines = append([]entity.POLine(nil), po.Lines...)
	if po.ReceivedAt != nil {
		t := *po.ReceivedAt
		c.ReceivedAt = &t
	}
	return &c
}
