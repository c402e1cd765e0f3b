package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newItem(name, category, section, ownerID string, qty, min int) *entity.Item {
	return &entity.Item{
		ID:          uuid.New().String(),
		Name:        name,
		Category:    category,
		Quantity:    qty,
		MinQuantity: min,
		UnitPrice:   decimal.NewFromFloat(4.50),
		Unit:        "unidad",
		OwnerID:     ownerID,
		Section:     section,
		UpdatedAt:   time.Now().UTC(),
	}
}

func mustCreate(t *testing.T, repo *memory.ItemRepo, items ...*entity.Item) {
	t.Helper()
	for _, it := range items {
		require.NoError(t, repo.Create(context.Background(), it))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento entre secciones
// ──────────────────────────────────────────────────────────────────────────────

// Items creados en una sección jamás aparecen al listar otra.
func TestItemRepo_AislamientoDeSecciones(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)
	ctx := context.Background()

	general := newItem("Arroz", "Granos", entity.SectionGeneral, "s1", 10, 2)
	hospital := newItem("Gasa", "Curación", entity.SectionHospital, "s2", 30, 5)
	mustCreate(t, repo, general, hospital)

	page, err := repo.ListBySection(ctx, entity.SectionHospital, 50, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, hospital.ID, page.Items[0].ID)

	page, err = repo.ListBySection(ctx, entity.SectionGeneral, 50, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, general.ID, page.Items[0].ID)
}

// Una sección desconocida falla cerrada: error explícito, nunca datos de otra sección.
func TestItemRepo_SeccionDesconocidaFallaCerrada(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)

	mustCreate(t, repo, newItem("Arroz", "Granos", entity.SectionGeneral, "s1", 10, 2))

	_, err := repo.ListBySection(context.Background(), "NoExiste", 50, "")
	assert.ErrorIs(t, err, domain.ErrResourceNotFound,
		"una sección irresoluble debe retornar ErrResourceNotFound, no datos ajenos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtro de propiedad (ownerId)
// ──────────────────────────────────────────────────────────────────────────────

// Todo registro expone OwnerID y Section para que el caller pueda filtrar por
// tienda: el filtro devuelve exactamente lo creado para ese owner.
func TestItemRepo_FiltroDePropiedadPorOwner(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)
	ctx := context.Background()

	mustCreate(t, repo,
		newItem("Arroz", "Granos", entity.SectionGeneral, "tienda-norte", 10, 2),
		newItem("Frijol", "Granos", entity.SectionGeneral, "tienda-norte", 8, 2),
		newItem("Aceite", "Aceites", entity.SectionGeneral, "tienda-sur", 5, 1),
	)

	page, err := repo.ListBySection(ctx, entity.SectionGeneral, 50, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	var norte []*entity.Item
	for _, it := range page.Items {
		require.NotEmpty(t, it.OwnerID, "todo item debe exponer OwnerID")
		require.NotEmpty(t, it.Section, "todo item debe exponer Section")
		if it.OwnerID == "tienda-norte" {
			norte = append(norte, it)
		}
	}
	assert.Len(t, norte, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clave de partición (Category)
// ──────────────────────────────────────────────────────────────────────────────

// Actualizar cualquier campo distinto de Category conserva la clave de partición.
func TestItemRepo_UpdatePreservaClaveDeParticion(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)
	ctx := context.Background()

	item := newItem("Arroz", "Granos", entity.SectionGeneral, "s1", 10, 2)
	mustCreate(t, repo, item)

	item.Name = "Arroz premium"
	item.Quantity = 99
	require.NoError(t, repo.Update(ctx, item))

	got, err := repo.GetByID(ctx, item.ID, entity.SectionGeneral)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Granos", got.Category, "la clave de partición no debe cambiar en un update")
	assert.Equal(t, "Arroz premium", got.Name)
}

// Un replace que llega con Category distinta a la persistida se rechaza.
func TestItemRepo_UpdateConCategoriaDistintaEsConflicto(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)

	item := newItem("Arroz", "Granos", entity.SectionGeneral, "s1", 10, 2)
	mustCreate(t, repo, item)

	mutado := *item
	mutado.Category = "Cereales"
	err := repo.Update(context.Background(), &mutado)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Cambiar la categoría es operación estructural: delete + insert bajo la nueva clave.
func TestItemRepo_ReplaceCategoryMueveElItem(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)
	ctx := context.Background()

	item := newItem("Arroz", "Granos", entity.SectionGeneral, "s1", 10, 2)
	mustCreate(t, repo, item)

	moved, err := repo.ReplaceCategory(ctx, item.ID, entity.SectionGeneral, "Cereales")
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, "Cereales", moved.Category)
	assert.Equal(t, item.ID, moved.ID, "el id lógico se conserva")

	got, err := repo.GetByID(ctx, item.ID, entity.SectionGeneral)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Cereales", got.Category)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete y lecturas
// ──────────────────────────────────────────────────────────────────────────────

// Delete seguido de read retorna no-encontrado (nil, sin error).
func TestItemRepo_DeleteLuegoGetRetornaNil(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)
	ctx := context.Background()

	item := newItem("Arroz", "Granos", entity.SectionGeneral, "s1", 10, 2)
	mustCreate(t, repo, item)

	deleted, err := repo.Delete(ctx, item.ID, entity.SectionGeneral)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetByID(ctx, item.ID, entity.SectionGeneral)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// Borrar un id ausente es false sin error: el estado final es el mismo.
func TestItemRepo_DeleteAusenteEsFalseSinError(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)

	deleted, err := repo.Delete(context.Background(), "no-existe", entity.SectionGeneral)
	require.NoError(t, err)
	assert.False(t, deleted)
}

// ──────────────────────────────────────────────────────────────────────────────
// Paginación y búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestItemRepo_PaginacionConCursor(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		it := newItem("Item", "Granos", entity.SectionGeneral, "s1", 10, 2)
		it.UpdatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		mustCreate(t, repo, it)
	}

	first, err := repo.ListBySection(ctx, entity.SectionGeneral, 2, "")
	require.NoError(t, err)
	assert.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := repo.ListBySection(ctx, entity.SectionGeneral, 2, first.NextCursor)
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)
	assert.NotEqual(t, first.Items[0].ID, second.Items[0].ID)

	third, err := repo.ListBySection(ctx, entity.SectionGeneral, 2, second.NextCursor)
	require.NoError(t, err)
	assert.Len(t, third.Items, 1)
	assert.Empty(t, third.NextCursor, "la última página no lleva cursor")
}

func TestItemRepo_CursorInvalidoEsValidationError(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)

	_, err := repo.ListBySection(context.Background(), entity.SectionGeneral, 10, "???no-base64???")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La búsqueda compara texto plegado: el repo recibe la query ya normalizada.
func TestItemRepo_SearchInsensibleAAcentos(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)
	ctx := context.Background()

	mustCreate(t, repo,
		newItem("Acetaminofén 500mg", "Analgésicos", entity.SectionHospital, "s1", 40, 10),
		newItem("Ibuprofeno 400mg", "Analgésicos", entity.SectionHospital, "s1", 25, 10),
	)

	results, total, err := repo.Search(ctx, entity.SectionHospital, "acetaminofen", "", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Acetaminofén 500mg", results[0].Name)
}

func TestItemRepo_SearchFiltraPorCategoria(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)
	ctx := context.Background()

	mustCreate(t, repo,
		newItem("Suero oral", "Hidratación", entity.SectionHospital, "s1", 15, 5),
		newItem("Suero fisiológico", "Curación", entity.SectionHospital, "s1", 12, 5),
	)

	results, total, err := repo.Search(ctx, entity.SectionHospital, "suero", "Curación", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Suero fisiológico", results[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestItemRepo_AdjustQuantityAplicaDelta(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)
	ctx := context.Background()

	item := newItem("Arroz", "Granos", entity.SectionGeneral, "s1", 20, 2)
	mustCreate(t, repo, item)

	got, err := repo.AdjustQuantity(ctx, item.ID, entity.SectionGeneral, -5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 15, got.Quantity)

	got, err = repo.AdjustQuantity(ctx, item.ID, entity.SectionGeneral, 50)
	require.NoError(t, err)
	assert.Equal(t, 65, got.Quantity)
}

func TestItemRepo_ListLowStockUsaUmbral(t *testing.T) {
	b := memory.NewBackend()
	repo := memory.NewItemRepository(b)
	ctx := context.Background()

	bajo := newItem("Gasa", "Curación", entity.SectionHospital, "s1", 10, 20)
	bien := newItem("Alcohol", "Antisépticos", entity.SectionHospital, "s1", 25, 20)
	mustCreate(t, repo, bajo, bien)

	low, err := repo.ListLowStock(ctx, entity.SectionHospital)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, bajo.ID, low[0].ID)
}
