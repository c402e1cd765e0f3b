package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/metrics"
)

// PurchaseOrderUseCase órdenes de compra con su máquina de estados:
// DRAFT→PENDING→(APPROVED)→PARTIALLY_RECEIVED→RECEIVED, o PENDING→CANCELLED.
// La recepción incrementa el stock por línea dentro de la misma transacción de
// DB que la transición de estado (adaptador PostgreSQL).
type PurchaseOrderUseCase struct {
	runner     TxRunner
	repo       repository.PurchaseOrderRepository
	itemRepo   repository.ItemRepository
	activities *usecase.ActivityLogger
	metrics    *metrics.Metrics
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	runner TxRunner,
	repo repository.PurchaseOrderRepository,
	itemRepo repository.ItemRepository,
	activities *usecase.ActivityLogger,
	m *metrics.Metrics,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{runner: runner, repo: repo, itemRepo: itemRepo, activities: activities, metrics: m}
}

// Create crea una orden en DRAFT o PENDING con snapshot de stock por línea.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, actor string, in dto.CreatePORequest) (out *dto.POResponse, err error) {
	defer func() { uc.metrics.Observe("po_create", err) }()
	if in.Section == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines := make([]entity.POLine, 0, len(in.Lines))
	cost := decimal.Zero
	for _, l := range in.Lines {
		if l.RequestedQuantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad solicitada inválida para %s", domain.ErrInvalidInput, l.ItemID)
		}
		item, err := uc.itemRepo.GetByID(ctx, l.ItemID, in.Section)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: item %s no existe en la sección %s", domain.ErrInvalidInput, l.ItemID, in.Section)
		}
		lines = append(lines, entity.POLine{
			ItemID:            item.ID,
			Name:              item.Name,
			CurrentStock:      item.Quantity,
			RequestedQuantity: l.RequestedQuantity,
			Unit:              item.Unit,
			Section:           item.Section,
		})
		cost = cost.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(l.RequestedQuantity))))
	}
	status := entity.POStatusPending
	if in.Draft {
		status = entity.POStatusDraft
	}
	now := time.Now().UTC()
	po := &entity.PurchaseOrder{
		ID:            uuid.New().String(),
		PONumber:      fmt.Sprintf("PO-%d", now.UnixMilli()),
		CreatedAt:     now,
		Status:        status,
		Lines:         lines,
		EstimatedCost: cost,
		Vendor:        in.Vendor,
		Notes:         in.Notes,
		CreatedBy:     actor,
		Section:       in.Section,
	}
	if err = uc.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	uc.activities.Log(ctx, actor, "creó la orden de compra "+po.PONumber, po.ID, entity.ActivityTypeCreate, po.Section)
	return toPOResponse(po), nil
}

// List lista órdenes por sección y estado opcional.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, section, status string, limit, offset int) (*dto.POListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.repo.List(ctx, section, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.POResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *toPOResponse(po))
	}
	return &dto.POListResponse{Items: items}, nil
}

// Get obtiene una orden por id. nil si no existe.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, id string) (*dto.POResponse, error) {
	po, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPOResponse(po), nil
}

// Update aplica un patch con verificación optimista sobre CurrentStatus.
// Las transiciones de estado pasan por la máquina; los estados terminales no
// admiten cambios.
func (uc *PurchaseOrderUseCase) Update(ctx context.Context, actor, id string, in dto.UpdatePORequest) (out *dto.POResponse, err error) {
	defer func() { uc.metrics.Observe("po_update", err) }()
	if in.CurrentStatus == "" {
		return nil, domain.ErrInvalidInput
	}
	po, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, nil
	}
	if entity.IsTerminalPOStatus(po.Status) {
		return nil, domain.ErrConflict
	}
	if in.Vendor != nil {
		po.Vendor = *in.Vendor
	}
	if in.Notes != nil {
		po.Notes = *in.Notes
	}
	if in.ApprovedBy != nil {
		po.ApprovedBy = *in.ApprovedBy
	}
	if in.Status != nil {
		if !validPOTransition(po.Status, *in.Status) {
			return nil, domain.ErrConflict
		}
		po.Status = *in.Status
	}
	if err = uc.repo.Update(ctx, po, in.CurrentStatus); err != nil {
		return nil, err
	}
	uc.activities.Log(ctx, actor, "actualizó la orden de compra "+po.PONumber, po.ID, entity.ActivityTypeUpdate, po.Section)
	return toPOResponse(po), nil
}

// Cancel cancela una orden DRAFT o PENDING. Estados posteriores se rechazan.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, actor, id string) (out *dto.POResponse, err error) {
	defer func() { uc.metrics.Observe("po_cancel", err) }()
	po, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, nil
	}
	if !po.CanCancel() {
		return nil, domain.ErrConflict
	}
	prev := po.Status
	po.Status = entity.POStatusCancelled
	if err = uc.repo.Update(ctx, po, prev); err != nil {
		return nil, err
	}
	uc.activities.Log(ctx, actor, "canceló la orden de compra "+po.PONumber, po.ID, entity.ActivityTypeUpdate, po.Section)
	return toPOResponse(po), nil
}

// Receive recibe mercancía de una orden PENDING/APPROVED/PARTIALLY_RECEIVED.
// Incrementa el stock de cada línea recibida; recepción completa transiciona a
// RECEIVED, parcial a PARTIALLY_RECEIVED. Órdenes RECEIVED o CANCELLED se
// rechazan con domain.ErrConflict, nunca se aceptan en silencio.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, actor, id string, in dto.ReceivePORequest) (out *dto.POResponse, err error) {
	defer func() { uc.metrics.Observe("po_receive", err) }()
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var received *entity.PurchaseOrder
	err = uc.runner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.TransactionRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		po, err := poRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrResourceNotFound
		}
		if !po.CanReceive() {
			return domain.ErrConflict
		}
		prev := po.Status

		byItem := make(map[string]*entity.POLine, len(po.Lines))
		for i := range po.Lines {
			byItem[po.Lines[i].ItemID] = &po.Lines[i]
		}
		for _, r := range in.Lines {
			line, ok := byItem[r.ItemID]
			if !ok {
				return fmt.Errorf("%w: la orden no contiene el item %s", domain.ErrInvalidInput, r.ItemID)
			}
			if r.ReceivedQuantity <= 0 {
				return fmt.Errorf("%w: cantidad recibida inválida para %s", domain.ErrInvalidInput, r.ItemID)
			}
			item, err := itemRepo.AdjustQuantity(ctx, r.ItemID, line.Section, r.ReceivedQuantity)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: item %s ya no existe en la sección %s", domain.ErrInvalidInput, r.ItemID, line.Section)
			}
			line.ReceivedQuantity += r.ReceivedQuantity
			if !r.ReceivedPrice.IsZero() {
				line.ReceivedPrice = r.ReceivedPrice
			}
		}

		complete := true
		for _, line := range po.Lines {
			if line.ReceivedQuantity < line.RequestedQuantity {
				complete = false
				break
			}
		}
		if complete {
			po.Status = entity.POStatusReceived
			now := time.Now().UTC()
			po.ReceivedAt = &now
		} else {
			po.Status = entity.POStatusPartiallyReceived
		}
		if err := poRepo.Update(ctx, po, prev); err != nil {
			return err
		}
		received = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.activities.Log(ctx, actor, "recibió mercancía de la orden "+received.PONumber, received.ID, entity.ActivityTypeUpdate, received.Section)
	return toPOResponse(received), nil
}

// validPOTransition transiciones permitidas vía Update (la recepción y la
// cancelación tienen operaciones propias).
func validPOTransition(from, to string) bool {
	switch from {
	case entity.POStatusDraft:
		return to == entity.POStatusPending
	case entity.POStatusPending:
		return to == entity.POStatusApproved || to == entity.POStatusCancelled
	case entity.POStatusApproved:
		return false
	default:
		return false
	}
}

func toPOResponse(po *entity.PurchaseOrder) *dto.POResponse {
	if po == nil {
		return nil
	}
	lines := make([]dto.POLineResponse, 0, len(po.Lines))
	for _, l := range po.Lines {
		lines = append(lines, dto.POLineResponse{
			ItemID:            l.ItemID,
			Name:              l.Name,
			CurrentStock:      l.CurrentStock,
			RequestedQuantity: l.RequestedQuantity,
			Unit:              l.Unit,
			Section:           l.Section,
			ReceivedQuantity:  l.ReceivedQuantity,
			ReceivedPrice:     l.ReceivedPrice,
		})
	}
	return &dto.POResponse{
		ID:            po.ID,
		PONumber:      po.PONumber,
		CreatedAt:     po.CreatedAt,
		Status:        po.Status,
		Lines:         lines,
		EstimatedCost: po.EstimatedCost,
		Vendor:        po.Vendor,
		Notes:         po.Notes,
		CreatedBy:     po.CreatedBy,
		ApprovedBy:    po.ApprovedBy,
		ReceivedAt:    po.ReceivedAt,
		Section:       po.Section,
	}
}
