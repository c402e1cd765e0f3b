package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para PurchaseOrder.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// List filtra por sección y, opcionalmente, por estado (vacío = todos).
	List(ctx context.Context, section, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	// Update reemplaza la orden solo si su estado persistido coincide con
	// currentStatus (replace-by-key). Retorna domain.ErrConflict si el estado
	// cambió por debajo; tras la operación sigue existiendo exactamente un
	// registro vivo por id.
	Update(ctx context.Context, po *entity.PurchaseOrder, currentStatus string) error
}
