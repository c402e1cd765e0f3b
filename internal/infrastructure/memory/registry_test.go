package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de secciones estáticas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistry_ResuelveSeccionesEstaticas(t *testing.T) {
	b := memory.NewBackend()
	reg := b.Registry()
	ctx := context.Background()

	for _, section := range entity.StaticSections() {
		resource, err := reg.Resolve(ctx, section)
		require.NoError(t, err, "la sección estática %s debe resolver", section)
		assert.NotEmpty(t, resource)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fail closed: sin fallback a un recurso por defecto
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistry_NombreDesconocidoFallaCerrado(t *testing.T) {
	b := memory.NewBackend()

	_, err := b.Registry().Resolve(context.Background(), "SeccionFantasma")
	assert.ErrorIs(t, err, domain.ErrResourceNotFound,
		"un nombre irresoluble jamás se sustituye por un recurso por defecto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché dinámica: refresh desde el registro de tiendas
// ──────────────────────────────────────────────────────────────────────────────

// Una tienda registrada pero aún no cacheada resuelve gracias al único refresh
// que Resolve dispara antes de fallar.
func TestRegistry_RefreshRecogeTiendasNuevas(t *testing.T) {
	b := memory.NewBackend()
	stores := memory.NewStoreRepository(b)
	prov := memory.NewProvisioner(b)
	ctx := context.Background()

	resource := "items_abc123def456"
	require.NoError(t, prov.Provision(ctx, resource))
	require.NoError(t, stores.Create(ctx, &entity.Store{
		ID:        uuid.New().String(),
		Name:      "Tienda Oriente",
		Section:   entity.SectionGeneral,
		Resource:  resource,
		Status:    entity.StoreStatusActive,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}))

	// Sin Put explícito: Resolve debe refrescar y encontrarla.
	got, err := b.Registry().Resolve(ctx, "Tienda Oriente")
	require.NoError(t, err)
	assert.Equal(t, resource, got)

	// La resolución de tiendas no distingue mayúsculas.
	got, err = b.Registry().Resolve(ctx, "tienda oriente")
	require.NoError(t, err)
	assert.Equal(t, resource, got)
}

func TestRegistry_RemoveRetiraLaEntrada(t *testing.T) {
	b := memory.NewBackend()
	reg := b.Registry()
	ctx := context.Background()

	reg.Put("Tienda Temporal", "items_tmp000000001")
	resource, err := reg.Resolve(ctx, "Tienda Temporal")
	require.NoError(t, err)
	assert.Equal(t, "items_tmp000000001", resource)

	reg.Remove("Tienda Temporal")
	_, err = reg.Resolve(ctx, "Tienda Temporal")
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}
