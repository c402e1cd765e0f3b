package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/logger"
	"github.com/jhoicas/Almacen-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type saleFixture struct {
	backend  *memory.Backend
	itemRepo *memory.ItemRepo
	txRepo   *memory.TransactionRepo
	uc       *inventory.SaleUseCase
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	b := memory.NewBackend()
	m := metrics.New(prometheus.NewRegistry())
	activities := usecase.NewActivityLogger(memory.NewActivityRepository(b), logger.Nop())
	txRepo := memory.NewTransactionRepository(b)
	uc := inventory.NewSaleUseCase(memory.NewTxRunner(b), txRepo, activities, m)
	return &saleFixture{
		backend:  b,
		itemRepo: memory.NewItemRepository(b),
		txRepo:   txRepo,
		uc:       uc,
	}
}

func (f *saleFixture) seedItem(t *testing.T, qty int, price string) *entity.Item {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	item := &entity.Item{
		ID:          uuid.New().String(),
		Name:        "Arroz blanco 500g",
		Category:    "Granos",
		Quantity:    qty,
		MinQuantity: 2,
		UnitPrice:   p,
		Unit:        "paquete",
		OwnerID:     "tienda-norte",
		Section:     entity.SectionGeneral,
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, f.itemRepo.Create(context.Background(), item))
	return item
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: la venta decrementa el stock
// ──────────────────────────────────────────────────────────────────────────────

// Vender 5 unidades de un item con quantity=20 deja quantity=15 y exactamente
// una transacción con totalAmount = 5 * unitPrice.
func TestSaleUseCase_VentaDecrementaStock(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()
	item := f.seedItem(t, 20, "4.00")

	out, err := f.uc.Register(ctx, "cajero-1", dto.RegisterSaleRequest{
		Type:    entity.TransactionTypeSale,
		Section: entity.SectionGeneral,
		Lines:   []dto.SaleLineRequest{{ItemID: item.ID, Quantity: 5}},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, decimal.NewFromInt(20).Equal(out.TotalAmount),
		"totalAmount debe ser 5 * 4.00 = 20.00, fue %s", out.TotalAmount)
	assert.Equal(t, "cajero-1", out.PerformedBy)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, 5, out.Lines[0].Quantity)

	got, err := f.itemRepo.GetByID(ctx, item.ID, entity.SectionGeneral)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 15, got.Quantity)

	list, err := f.uc.List(ctx, entity.SectionGeneral, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1, "debe existir exactamente una transacción")
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia
// ──────────────────────────────────────────────────────────────────────────────

// Un reintento con la misma clave devuelve la transacción original y no vuelve
// a decrementar el stock.
func TestSaleUseCase_ReintentoConMismaClaveNoDuplica(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()
	item := f.seedItem(t, 20, "4.00")

	req := dto.RegisterSaleRequest{
		Type:           entity.TransactionTypeSale,
		Section:        entity.SectionGeneral,
		Lines:          []dto.SaleLineRequest{{ItemID: item.ID, Quantity: 5}},
		IdempotencyKey: "venta-123",
	}

	first, err := f.uc.Register(ctx, "cajero-1", req)
	require.NoError(t, err)

	second, err := f.uc.Register(ctx, "cajero-1", req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "el reintento debe devolver la transacción original")

	got, err := f.itemRepo.GetByID(ctx, item.ID, entity.SectionGeneral)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Quantity, "el stock solo se decrementa una vez")

	list, err := f.uc.List(ctx, entity.SectionGeneral, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleUseCase_TipoInvalidoEsValidationError(t *testing.T) {
	f := newSaleFixture(t)
	item := f.seedItem(t, 20, "4.00")

	_, err := f.uc.Register(context.Background(), "cajero-1", dto.RegisterSaleRequest{
		Type:    "REGALO",
		Section: entity.SectionGeneral,
		Lines:   []dto.SaleLineRequest{{ItemID: item.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleUseCase_SinLineasEsValidationError(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.uc.Register(context.Background(), "cajero-1", dto.RegisterSaleRequest{
		Type:    entity.TransactionTypeSale,
		Section: entity.SectionGeneral,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleUseCase_ItemInexistenteEsValidationError(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.uc.Register(context.Background(), "cajero-1", dto.RegisterSaleRequest{
		Type:    entity.TransactionTypeSale,
		Section: entity.SectionGeneral,
		Lines:   []dto.SaleLineRequest{{ItemID: "no-existe", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Los otros tipos de salida (uso interno, daño, vencimiento) pasan por el mismo flujo.
func TestSaleUseCase_UsoInternoTambienDecrementa(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()
	item := f.seedItem(t, 10, "1.50")

	out, err := f.uc.Register(ctx, "enfermera-2", dto.RegisterSaleRequest{
		Type:    entity.TransactionTypeInternalUsage,
		Section: entity.SectionGeneral,
		Lines:   []dto.SaleLineRequest{{ItemID: item.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypeInternalUsage, out.Type)

	got, err := f.itemRepo.GetByID(ctx, item.ID, entity.SectionGeneral)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
}
