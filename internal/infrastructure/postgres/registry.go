package postgres

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ResourceRegistry = (*Registry)(nil)

// Registry resuelve secciones y tiendas a su tabla física de items.
// Mapa estático de secciones pre-declaradas + caché dinámica poblada desde la
// tabla stores. La caché es el único estado mutable local al proceso: lecturas
// concurrentes durante un Refresh ven la versión anterior completa, nunca un
// mapa parcial (copy-on-refresh bajo RWMutex).
type Registry struct {
	q Querier

	mu      sync.RWMutex
	static  map[string]string
	dynamic map[string]string
}

// NewRegistry construye el registro con las secciones estáticas pre-cargadas.
func NewRegistry(q Querier) *Registry {
	static := make(map[string]string, 3)
	for _, s := range entity.StaticSections() {
		static[s] = "items_" + strings.ToLower(s)
	}
	return &Registry{
		q:       q,
		static:  static,
		dynamic: make(map[string]string),
	}
}

// Resolve busca estático -> dinámico -> un único Refresh -> fail closed.
// Un nombre irresoluble retorna domain.ErrResourceNotFound; no existe fallback
// a un recurso por defecto (sería una fuga de datos entre secciones).
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

// Refresh recarga la caché dinámica desde la tabla stores. Idempotente;
// llamadas concurrentes terminan en last-writer-wins sobre la fuente persistida.
func (r *Registry) Refresh(ctx context.Context) error {
	rows, err := r.q.Query(ctx, `SELECT name, resource FROM stores`)
	if err != nil {
		return fmt.Errorf("refresh registry: %w", err)
	}
	defer rows.Close()

	fresh := make(map[string]string)
	for rows.Next() {
		var name, resource string
		if err := rows.Scan(&name, &resource); err != nil {
			return fmt.Errorf("scan store row: %w", err)
		}
		fresh[strings.ToLower(name)] = resource
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate store rows: %w", err)
	}

	r.mu.Lock()
	r.dynamic = fresh
	r.mu.Unlock()
	return nil
}

// Put inserta o reemplaza una entrada dinámica (ciclo de vida de tiendas).
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
