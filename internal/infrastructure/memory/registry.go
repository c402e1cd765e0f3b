package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ResourceRegistry = (*Registry)(nil)

// Registry resolución de nombres lógicos a recursos en memoria. Mapa estático
// de secciones + caché dinámica reconstruida desde el registro de tiendas.
// Los lectores nunca ven un mapa a medio poblar: Refresh construye una copia y
// la intercambia bajo el lock (last-writer-wins).
type Registry struct {
	mu      sync.RWMutex
	static  map[string]string
	dynamic map[string]string
	backend *Backend
}

func newRegistry(b *Backend, static map[string]string) *Registry {
	return &Registry{
		static:  static,
		dynamic: make(map[string]string),
		backend: b,
	}
}

// Resolve busca en el mapa estático, luego en la caché dinámica y, ante un
// fallo, dispara un único Refresh antes de fallar cerrado con
// domain.ErrResourceNotFound. Jamás sustituye por un recurso por defecto.
func (r *Registry) Resolve(ctx context.Context, name string) (string, error) {
	if resource, ok := r.lookup(name); ok {
		return resource, nil
	}
	if err := r.Refresh(ctx); err != nil {
		return "", err
	}
	if resource, ok := r.lookup(name); ok {
		return resource, nil
	}
	return "", domain.ErrResourceNotFound
}

func (r *Registry) lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if resource, ok := r.static[name]; ok {
		return resource, true
	}
	resource, ok := r.dynamic[strings.ToLower(name)]
	return resource, ok
}

// Refresh reconstruye la caché dinámica desde el registro de tiendas.
func (r *Registry) Refresh(_ context.Context) error {
	stores := r.backend.snapshotStores()
	fresh := make(map[string]string, len(stores))
	for _, s := range stores {
		fresh[strings.ToLower(s.Name)] = s.Resource
	}
	r.mu.Lock()
	r.dynamic = fresh
	r.mu.Unlock()
	return nil
}

// Put inserta o reemplaza una entrada dinámica.
func (r *Registry) Put(name, resource string) {
	r.mu.Lock()
	r.dynamic[strings.ToLower(name)] = resource
	r.mu.Unlock()
}

// Remove retira una entrada dinámica.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	delete(r.dynamic, strings.ToLower(name))
	r.mu.Unlock()
}
