package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
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

type storeFixture struct {
	backend *memory.Backend
	uc      *usecase.StoreUseCase
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	b := memory.NewBackend()
	m := metrics.New(prometheus.NewRegistry())
	activities := usecase.NewActivityLogger(memory.NewActivityRepository(b), logger.Nop())
	uc := usecase.NewStoreUseCase(
		memory.NewStoreRepository(b),
		memory.NewProvisioner(b),
		b.Registry(),
		activities,
		m,
		logger.Nop(),
	)
	return &storeFixture{backend: b, uc: uc}
}

func findStore(list *dto.StoreListResponse, name string) *dto.StoreResponse {
	for i := range list.Items {
		if strings.EqualFold(list.Items[i].Name, name) {
			return &list.Items[i]
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Siembra de tiendas por defecto
// ──────────────────────────────────────────────────────────────────────────────

// El primer listado garantiza un entorno base no vacío: las tiendas por defecto
// existen y son IsDefault.
func TestStoreUseCase_PrimerListadoSiembraDefaults(t *testing.T) {
	f := newStoreFixture(t)

	out, err := f.uc.List(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, out.Items)

	central := findStore(out, "Almacén Central")
	require.NotNil(t, central, "la tienda por defecto de GENERAL debe existir")
	assert.True(t, central.IsDefault)
	assert.Equal(t, entity.SectionGeneral, central.Section)

	farmacia := findStore(out, "Farmacia Hospitalaria")
	require.NotNil(t, farmacia)
	assert.Equal(t, entity.SectionHospital, farmacia.Section)
}

// La siembra es idempotente: listar dos veces no duplica tiendas.
func TestStoreUseCase_SiembraIdempotente(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()

	first, err := f.uc.List(ctx, "")
	require.NoError(t, err)
	second, err := f.uc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, len(first.Items), len(second.Items))
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprovisionamiento de tiendas nuevas
// ──────────────────────────────────────────────────────────────────────────────

// Crear una tienda aprovisiona el recurso, registra la fila y publica el nombre
// en el registry: los items escritos bajo su nombre resuelven de inmediato.
func TestStoreUseCase_CreateAprovisionaYResuelve(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()

	out, err := f.uc.Create(ctx, "admin-1", dto.CreateStoreRequest{
		Name:    "Tienda Oriente",
		Section: entity.SectionGeneral,
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.False(t, out.IsDefault)
	assert.Equal(t, entity.StoreStatusActive, out.Status)

	resource, err := f.backend.Registry().Resolve(ctx, "Tienda Oriente")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resource, "items_"), "recurso generado: %s", resource)
	assert.NotEqual(t, "items_general", resource,
		"la tienda nueva recibe recurso propio, no el estático de la sección")
}

// Crear dos veces el mismo nombre en la misma sección: la segunda falla limpia
// con duplicado; nunca dos recursos vivos para el mismo nombre.
func TestStoreUseCase_CreateDuplicadoFallaLimpio(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()

	first, err := f.uc.Create(ctx, "admin-1", dto.CreateStoreRequest{
		Name:    "Tienda Oriente",
		Section: entity.SectionGeneral,
	})
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, "admin-1", dto.CreateStoreRequest{
		Name:    "tienda oriente", // mismo nombre, distinta capitalización
		Section: entity.SectionGeneral,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El nombre sigue resolviendo al recurso original.
	resource, err := f.backend.Registry().Resolve(ctx, "Tienda Oriente")
	require.NoError(t, err)
	list, err := f.uc.List(ctx, entity.SectionGeneral)
	require.NoError(t, err)
	got := findStore(list, "Tienda Oriente")
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.NotEmpty(t, resource)
}

func TestStoreUseCase_CreateEnSeccionInexistente(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.uc.Create(context.Background(), "admin-1", dto.CreateStoreRequest{
		Name:    "Tienda Fantasma",
		Section: "NARNIA",
	})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación y renombrado
// ──────────────────────────────────────────────────────────────────────────────

func TestStoreUseCase_DeleteTiendaPorDefectoProhibido(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()

	list, err := f.uc.List(ctx, "")
	require.NoError(t, err)
	central := findStore(list, "Almacén Central")
	require.NotNil(t, central)

	_, err = f.uc.Delete(ctx, "admin-1", central.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"las tiendas por defecto comparten el recurso estático y no se eliminan")
}

func TestStoreUseCase_DeleteRetiraDelRegistry(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "admin-1", dto.CreateStoreRequest{
		Name:    "Tienda Efímera",
		Section: entity.SectionGeneral,
	})
	require.NoError(t, err)

	deleted, err := f.uc.Delete(ctx, "admin-1", created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = f.backend.Registry().Resolve(ctx, "Tienda Efímera")
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestStoreUseCase_RenameActualizaRegistry(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "admin-1", dto.CreateStoreRequest{
		Name:    "Tienda Vieja",
		Section: entity.SectionGeneral,
	})
	require.NoError(t, err)
	original, err := f.backend.Registry().Resolve(ctx, "Tienda Vieja")
	require.NoError(t, err)

	nuevo := "Tienda Nueva"
	out, err := f.uc.Rename(ctx, "admin-1", created.ID, dto.RenameStoreRequest{Name: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, "Tienda Nueva", out.Name)

	// El nombre nuevo resuelve al mismo recurso; el viejo deja de resolver.
	resource, err := f.backend.Registry().Resolve(ctx, "Tienda Nueva")
	require.NoError(t, err)
	assert.Equal(t, original, resource, "renombrar no cambia el recurso físico")
}

// cacheOnlyRegistry caché plana sin auto-refresh: permite observar el estado
// exacto que el ciclo de vida de tiendas deja en la caché.
type cacheOnlyRegistry struct {
	entries map[string]string
}

func (r *cacheOnlyRegistry) Resolve(_ context.Context, name string) (string, error) {
	if res, ok := r.entries[strings.ToLower(name)]; ok {
		return res, nil
	}
	return "", domain.ErrResourceNotFound
}

func (r *cacheOnlyRegistry) Refresh(context.Context) error { return nil }

func (r *cacheOnlyRegistry) Put(name, resource string) {
	r.entries[strings.ToLower(name)] = resource
}

func (r *cacheOnlyRegistry) Remove(name string) {
	delete(r.entries, strings.ToLower(name))
}

// Un renombrado solo de mayúsculas comparte la clave normalizada de la caché:
// el Put y el Remove no deben anularse entre sí dejando la tienda sin resolver.
func TestStoreUseCase_RenameSoloMayusculasNoVaciaLaCache(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	reg := &cacheOnlyRegistry{entries: map[string]string{}}
	activities := usecase.NewActivityLogger(memory.NewActivityRepository(b), logger.Nop())
	uc := usecase.NewStoreUseCase(
		memory.NewStoreRepository(b),
		memory.NewProvisioner(b),
		reg,
		activities,
		metrics.New(prometheus.NewRegistry()),
		logger.Nop(),
	)

	created, err := uc.Create(ctx, "admin-1", dto.CreateStoreRequest{
		Name:    "Tienda Mixta",
		Section: entity.SectionGeneral,
	})
	require.NoError(t, err)
	original, err := reg.Resolve(ctx, "Tienda Mixta")
	require.NoError(t, err)

	nuevo := "TIENDA MIXTA"
	out, err := uc.Rename(ctx, "admin-1", created.ID, dto.RenameStoreRequest{Name: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, "TIENDA MIXTA", out.Name)

	resource, err := reg.Resolve(ctx, "tienda mixta")
	require.NoError(t, err, "la entrada de caché debe sobrevivir al renombrado de solo mayúsculas")
	assert.Equal(t, original, resource)
}

func TestStoreUseCase_ArchiveEsBorradoSuave(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "admin-1", dto.CreateStoreRequest{
		Name:    "Tienda Pausada",
		Section: entity.SectionGeneral,
	})
	require.NoError(t, err)

	out, err := f.uc.Archive(ctx, "admin-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StoreStatusArchived, out.Status)

	// Archivar no toca el registry ni los datos.
	_, err = f.backend.Registry().Resolve(ctx, "Tienda Pausada")
	assert.NoError(t, err)
}
