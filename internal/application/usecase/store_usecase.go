package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
	"github.com/jhoicas/Almacen-api/pkg/metrics"
)

// defaultStore definición de una tienda sembrada en el primer arranque.
// Las tiendas por defecto comparten el recurso de su sección y no se pueden eliminar.
type defaultStore struct {
	name    string
	section string
}

var defaultStores = []defaultStore{
	{"Almacén Central", entity.SectionGeneral},
	{"Farmacia Hospitalaria", entity.SectionHospital},
	{"Bodega de Ayuda Humanitaria", entity.SectionRelief},
	{"Tienda Norte", entity.SectionGeneral},
	{"Tienda Sur", entity.SectionGeneral},
}

// StoreUseCase gestor de ciclo de vida de tiendas: aprovisiona el recurso
// físico, mantiene el registro persistido y la caché del ResourceRegistry.
type StoreUseCase struct {
	repo        repository.StoreRepository
	provisioner repository.ResourceProvisioner
	registry    repository.ResourceRegistry
	activities  *ActivityLogger
	metrics     *metrics.Metrics
	log         *logger.Logger

	seedOnce sync.Once
}

// NewStoreUseCase construye el gestor.
func NewStoreUseCase(
	repo repository.StoreRepository,
	provisioner repository.ResourceProvisioner,
	registry repository.ResourceRegistry,
	activities *ActivityLogger,
	m *metrics.Metrics,
	log *logger.Logger,
) *StoreUseCase {
	return &StoreUseCase{
		repo:        repo,
		provisioner: provisioner,
		registry:    registry,
		activities:  activities,
		metrics:     m,
		log:         log,
	}
}

// List lista tiendas, opcionalmente filtradas por sección. En la primera
// invocación siembra las tiendas por defecto si faltan, para garantizar un
// entorno base no vacío.
func (uc *StoreUseCase) List(ctx context.Context, section string) (out *dto.StoreListResponse, err error) {
	defer func() { uc.metrics.Observe("stores_list", err) }()
	uc.seedOnce.Do(func() { uc.seedDefaults(ctx) })
	list, err := uc.repo.List(ctx, section)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{Items: items}, nil
}

// seedDefaults crea las tiendas por defecto que falten. Best-effort: un fallo
// se loguea y no bloquea el listado; la siguiente instancia vuelve a intentar.
func (uc *StoreUseCase) seedDefaults(ctx context.Context) {
	existing, err := uc.repo.List(ctx, "")
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo leer el registro de tiendas para la siembra inicial")
		return
	}
	byName := make(map[string]bool, len(existing))
	for _, s := range existing {
		byName[strings.ToLower(s.Name)] = true
	}
	now := time.Now().UTC()
	for _, def := range defaultStores {
		if byName[strings.ToLower(def.name)] {
			continue
		}
		store := &entity.Store{
			ID:        uuid.New().String(),
			Name:      def.name,
			Section:   def.section,
			Resource:  sectionResource(def.section),
			Status:    entity.StoreStatusActive,
			IsDefault: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.repo.Create(ctx, store); err != nil && err != domain.ErrDuplicate {
			uc.log.Warn().Err(err).Str("store", def.name).Msg("siembra de tienda por defecto falló")
			continue
		}
		uc.registry.Put(store.Name, store.Resource)
	}
}

// Create aprovisiona una tienda nueva. Orden estricto: recurso físico primero
// (idempotente), luego fila de registro (constraint único por sección+nombre)
// y por último la caché. Un recurso huérfano por fallo intermedio es
// recuperable; una tienda registrada sin recurso no lo sería.
func (uc *StoreUseCase) Create(ctx context.Context, actor string, in dto.CreateStoreRequest) (out *dto.StoreResponse, err error) {
	defer func() { uc.metrics.Observe("stores_create", err) }()
	if in.Name == "" || in.Section == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsStaticSection(in.Section) {
		return nil, domain.ErrResourceNotFound
	}

	// Identificador estable desacoplado del nombre visible: evita colisiones y
	// el peligro de renombrar.
	resource := "items_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]

	if err = uc.provisioner.Provision(ctx, resource); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Section:   in.Section,
		Resource:  resource,
		Status:    entity.StoreStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = uc.repo.Create(ctx, store); err != nil {
		// Limpieza best-effort del recurso recién aprovisionado.
		if derr := uc.provisioner.Deprovision(ctx, resource); derr != nil {
			uc.log.Warn().Err(derr).Str("resource", resource).Msg("recurso huérfano tras registro fallido")
		}
		return nil, err
	}
	uc.registry.Put(store.Name, store.Resource)
	uc.activities.Log(ctx, actor, "creó la tienda "+store.Name, store.ID, entity.ActivityTypeCreate, store.Section)
	return toStoreResponse(store), nil
}

// Delete elimina una tienda y su recurso de respaldo. Rechaza tiendas por
// defecto (comparten el recurso estático de la sección). false si no existe.
func (uc *StoreUseCase) Delete(ctx context.Context, actor, id string) (deleted bool, err error) {
	defer func() { uc.metrics.Observe("stores_delete", err) }()
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if store == nil {
		return false, nil
	}
	if store.IsDefault || isStaticResource(store.Resource) {
		return false, domain.ErrForbidden
	}
	// Recurso-ya-ausente cuenta como éxito.
	if err = uc.provisioner.Deprovision(ctx, store.Resource); err != nil {
		return false, err
	}
	deleted, err = uc.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	uc.registry.Remove(store.Name)
	uc.activities.Log(ctx, actor, "eliminó la tienda "+store.Name, store.ID, entity.ActivityTypeDelete, store.Section)
	return deleted, nil
}

// Rename actualiza el registro de una tienda. Si el nombre cambia, la caché se
// actualiza bajo ambas claves: primero la nueva, después se retira la vieja,
// para que ningún lector quede sin resolución en el intermedio.
func (uc *StoreUseCase) Rename(ctx context.Context, actor, id string, in dto.RenameStoreRequest) (out *dto.StoreResponse, err error) {
	defer func() { uc.metrics.Observe("stores_rename", err) }()
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, nil
	}
	oldName := store.Name
	if in.Name != nil && *in.Name != "" {
		store.Name = *in.Name
	}
	store.UpdatedAt = time.Now().UTC()
	if err = uc.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	// Un cambio solo de mayúsculas comparte la clave normalizada: el Remove
	// borraría la entrada recién puesta.
	if !strings.EqualFold(store.Name, oldName) {
		uc.registry.Put(store.Name, store.Resource)
		uc.registry.Remove(oldName)
	}
	uc.activities.Log(ctx, actor, "renombró la tienda "+oldName+" a "+store.Name, store.ID, entity.ActivityTypeUpdate, store.Section)
	return toStoreResponse(store), nil
}

// Archive marca la tienda como ARCHIVED (borrado suave). nil si no existe.
func (uc *StoreUseCase) Archive(ctx context.Context, actor, id string) (out *dto.StoreResponse, err error) {
	defer func() { uc.metrics.Observe("stores_archive", err) }()
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, nil
	}
	store.Status = entity.StoreStatusArchived
	store.UpdatedAt = time.Now().UTC()
	if err = uc.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	uc.activities.Log(ctx, actor, "archivó la tienda "+store.Name, store.ID, entity.ActivityTypeUpdate, store.Section)
	return toStoreResponse(store), nil
}

// sectionResource nombre del recurso estático de items de una sección.
func sectionResource(section string) string {
	return "items_" + strings.ToLower(section)
}

func isStaticResource(resource string) bool {
	for _, s := range entity.StaticSections() {
		if resource == sectionResource(s) {
			return true
		}
	}
	return false
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Section:   s.Section,
		Status:    s.Status,
		IsDefault: s.IsDefault,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
