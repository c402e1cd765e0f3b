// Package memory implementa el contrato de persistencia completo sobre mapas
// en memoria. Es el adaptador de referencia contra el que se prueban las
// propiedades del contrato (aislamiento por sección, disciplina de clave de
// partición, fail-closed del registro) y no arrastra dependencias a propósito.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Backend estado compartido del adaptador. Los repos tipados (NewItemRepository,
// NewStoreRepository, ...) son vistas sobre esta estructura, igual que los
// adaptadores de postgres son vistas sobre el pool.
type Backend struct {
	mu sync.RWMutex

	// resource -> id -> item
	resources map[string]map[string]*entity.Item

	transactions map[string]*entity.Transaction
	txByKey      map[string]string // idempotency key -> transaction id

	orders map[string]*entity.PurchaseOrder

	activities []*entity.Activity

	stores map[string]*entity.Store // id -> store

	registry *Registry
}

// NewBackend crea el backend con los recursos estáticos de sección ya
// aprovisionados, igual que lo hacen las migraciones en postgres.
func NewBackend() *Backend {
	b := &Backend{
		resources:    make(map[string]map[string]*entity.Item),
		transactions: make(map[string]*entity.Transaction),
		txByKey:      make(map[string]string),
		orders:       make(map[string]*entity.PurchaseOrder),
		stores:       make(map[string]*entity.Store),
	}
	static := make(map[string]string, 3)
	for _, s := range entity.StaticSections() {
		resource := "items_" + strings.ToLower(s)
		b.resources[resource] = make(map[string]*entity.Item)
		static[s] = resource
	}
	b.registry = newRegistry(b, static)
	return b
}

// Registry devuelve el registro de recursos del backend.
func (b *Backend) Registry() *Registry {
	return b.registry
}

// snapshotStores copia del registro de tiendas para el refresco del registry.
func (b *Backend) snapshotStores() []*entity.Store {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*entity.Store, 0, len(b.stores))
	for _, s := range b.stores {
		c := *s
		out = append(out, &c)
	}
	return out
}

func copyItem(i *entity.Item) *entity.Item {
	c := *i
	return &c
}

func sortTransactionsDesc(txs []*entity.Transaction) {
	sort.Slice(txs, func(a, b int) bool {
		if txs[a].Timestamp.Equal(txs[b].Timestamp) {
			return txs[a].ID < txs[b].ID
		}
		return txs[a].Timestamp.After(txs[b].Timestamp)
	})
}

func sortByUpdatedDesc(items []*entity.Item) {
	sort.Slice(items, func(a, b int) bool {
		if items[a].UpdatedAt.Equal(items[b].UpdatedAt) {
			return items[a].ID < items[b].ID
		}
		return items[a].UpdatedAt.After(items[b].UpdatedAt)
	})
}

// bucketLocked devuelve el mapa del recurso ya resuelto. Caller sostiene b.mu.
func (b *Backend) bucketLocked(resource string) (map[string]*entity.Item, error) {
	bucket, ok := b.resources[resource]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	return bucket, nil
}
