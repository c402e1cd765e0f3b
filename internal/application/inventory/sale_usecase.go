package inventory

import (
	"context"
	"errors"
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

// SaleUseCase flujo "vender item": decrementa el stock de cada línea y crea la
// transacción inmutable. Las dos escrituras comparten una transacción de DB en
// el adaptador de PostgreSQL; ante un timeout el resultado es desconocido y el
// reintento con la misma clave de idempotencia es seguro (no duplica ni el
// registro ni los decrementos).
type SaleUseCase struct {
	runner     TxRunner
	txRepo     repository.TransactionRepository
	activities *usecase.ActivityLogger
	metrics    *metrics.Metrics
}

// NewSaleUseCase construye el flujo de venta.
func NewSaleUseCase(runner TxRunner, txRepo repository.TransactionRepository, activities *usecase.ActivityLogger, m *metrics.Metrics) *SaleUseCase {
	return &SaleUseCase{runner: runner, txRepo: txRepo, activities: activities, metrics: m}
}

// Register registra la venta (o uso interno/daño/vencimiento).
// La validación "no vender más de lo disponible" es del caller; aquí la
// aritmética es entera plana, como en el resto del motor.
func (uc *SaleUseCase) Register(ctx context.Context, actor string, in dto.RegisterSaleRequest) (out *dto.TransactionResponse, err error) {
	defer func() { uc.metrics.Observe("sales_register", err) }()

	if in.Section == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.TransactionTypeSale, entity.TransactionTypeInternalUsage,
		entity.TransactionTypeDamage, entity.TransactionTypeExpiry:
	default:
		return nil, domain.ErrInvalidInput
	}
	key := in.IdempotencyKey
	if key == "" {
		key = uuid.New().String()
	}

	// Reintento: si la clave ya fue aplicada, devolver la transacción original.
	if existing, err := uc.txRepo.GetByIdempotencyKey(ctx, key); err != nil {
		return nil, err
	} else if existing != nil {
		return toTransactionResponse(existing), nil
	}

	var created *entity.Transaction
	err = uc.runner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		txRepo repository.TransactionRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		lines := make([]entity.TransactionLine, 0, len(in.Lines))
		total := decimal.Zero
		for _, l := range in.Lines {
			if l.Quantity <= 0 {
				return fmt.Errorf("%w: cantidad inválida para %s", domain.ErrInvalidInput, l.ItemID)
			}
			item, err := itemRepo.AdjustQuantity(ctx, l.ItemID, in.Section, -l.Quantity)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: item %s no existe en la sección %s", domain.ErrInvalidInput, l.ItemID, in.Section)
			}
			subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Add(l.Tax)
			lines = append(lines, entity.TransactionLine{
				ItemID:    item.ID,
				Name:      item.Name,
				Quantity:  l.Quantity,
				UnitPrice: item.UnitPrice,
				Tax:       l.Tax,
				Subtotal:  subtotal,
			})
			total = total.Add(subtotal)
		}
		now := time.Now().UTC()
		tx := &entity.Transaction{
			ID:             uuid.New().String(),
			InvoiceNumber:  fmt.Sprintf("INV-%d", now.UnixMilli()),
			Timestamp:      now,
			Type:           in.Type,
			Lines:          lines,
			TotalAmount:    total,
			PaymentMethod:  in.PaymentMethod,
			CustomerName:   in.CustomerName,
			Section:        in.Section,
			PerformedBy:    actor,
			IdempotencyKey: key,
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		// Carrera de idempotencia: otro reintento ganó; la transacción de DB
		// hizo rollback de nuestros decrementos y la respuesta es la original.
		if errors.Is(err, domain.ErrDuplicate) {
			existing, gerr := uc.txRepo.GetByIdempotencyKey(ctx, key)
			if gerr == nil && existing != nil {
				return toTransactionResponse(existing), nil
			}
		}
		return nil, err
	}

	uc.activities.Log(ctx, actor, "registró la transacción "+created.InvoiceNumber, created.ID, entity.ActivityTypeCreate, created.Section)
	return toTransactionResponse(created), nil
}

// List lista transacciones de una sección.
func (uc *SaleUseCase) List(ctx context.Context, section string, limit, offset int) (*dto.TransactionListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.txRepo.ListBySection(ctx, section, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{Items: items}, nil
}

// Get obtiene una transacción por id. nil si no existe.
func (uc *SaleUseCase) Get(ctx context.Context, id, section string) (*dto.TransactionResponse, error) {
	tx, err := uc.txRepo.GetByID(ctx, id, section)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	if t == nil {
		return nil
	}
	lines := make([]dto.TransactionLineResponse, 0, len(t.Lines))
	for _, l := range t.Lines {
		lines = append(lines, dto.TransactionLineResponse{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Tax:       l.Tax,
			Subtotal:  l.Subtotal,
		})
	}
	return &dto.TransactionResponse{
		ID:            t.ID,
		InvoiceNumber: t.InvoiceNumber,
		Timestamp:     t.Timestamp,
		Type:          t.Type,
		Lines:         lines,
		TotalAmount:   t.TotalAmount,
		PaymentMethod: t.PaymentMethod,
		CustomerName:  t.CustomerName,
		Section:       t.Section,
		PerformedBy:   t.PerformedBy,
	}
}
