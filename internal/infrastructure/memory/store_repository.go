package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)
var _ repository.ResourceProvisioner = (*Provisioner)(nil)

// StoreRepo registro de tiendas sobre el backend en memoria.
type StoreRepo struct {
	b *Backend
}

// NewStoreRepository construye la vista.
func NewStoreRepository(b *Backend) *StoreRepo {
	return &StoreRepo{b: b}
}

// Create inserta la fila; nombre repetido en la sección -> ErrDuplicate
// (equivalente del constraint único de postgres que cierra la carrera).
func (r *StoreRepo) Create(_ context.Context, store *entity.Store) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	for _, s := range r.b.stores {
		if s.Section == store.Section && strings.EqualFold(s.Name, store.Name) {
			return domain.ErrDuplicate
		}
	}
	c := *store
	r.b.stores[store.ID] = &c
	return nil
}

// GetByID nil si no existe.
func (r *StoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	s, ok := r.b.stores[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

// List por sección; vacío = todas.
func (r *StoreRepo) List(_ context.Context, section string) ([]*entity.Store, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	out := make([]*entity.Store, 0, len(r.b.stores))
	for _, s := range r.b.stores {
		if section != "" && s.Section != section {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

// Update reemplaza la fila si existe.
func (r *StoreRepo) Update(_ context.Context, store *entity.Store) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	if _, ok := r.b.stores[store.ID]; !ok {
		return domain.ErrResourceNotFound
	}
	c := *store
	r.b.stores[store.ID] = &c
	return nil
}

// Delete false (sin error) si la fila no existe.
func (r *StoreRepo) Delete(_ context.Context, id string) (bool, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	if _, ok := r.b.stores[id]; !ok {
		return false, nil
	}
	delete(r.b.stores, id)
	return true, nil
}

// Provisioner crea/elimina recursos de items en el backend en memoria.
type Provisioner struct {
	b *Backend
}

// NewProvisioner construye el aprovisionador.
func NewProvisioner(b *Backend) *Provisioner {
	return &Provisioner{b: b}
}

// Provision idempotente: recurso ya existente no es error.
func (p *Provisioner) Provision(_ context.Context, resource string) error {
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	if _, ok := p.b.resources[resource]; !ok {
		p.b.resources[resource] = make(map[string]*entity.Item)
	}
	return nil
}

// Deprovision recurso-ya-ausente cuenta como éxito.
func (p *Provisioner) Deprovision(_ context.Context, resource string) error {
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	delete(p.b.resources, resource)
	return nil
}
