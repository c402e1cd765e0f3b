package memory

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/textutil"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo vista de items sobre el backend en memoria.
// La resolución de recurso ocurre antes de tomar el lock del backend, así un
// Refresh del registro nunca se anida dentro de una operación de datos.
type ItemRepo struct {
	b *Backend
}

// NewItemRepository construye la vista.
func NewItemRepository(b *Backend) *ItemRepo {
	return &ItemRepo{b: b}
}

// Create inserta el item en el recurso resuelto desde item.Section.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	resource, err := r.b.registry.Resolve(ctx, item.Section)
	if err != nil {
		return err
	}
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	bucket, err := r.b.bucketLocked(resource)
	if err != nil {
		return err
	}
	bucket[item.ID] = copyItem(item)
	return nil
}

// GetByID nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id, section string) (*entity.Item, error) {
	resource, err := r.b.registry.Resolve(ctx, section)
	if err != nil {
		return nil, err
	}
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	bucket, err := r.b.bucketLocked(resource)
	if err != nil {
		return nil, err
	}
	item, ok := bucket[id]
	if !ok {
		return nil, nil
	}
	return copyItem(item), nil
}

// ListBySection ordenado por UpdatedAt descendente, cursor opaco por offset.
func (r *ItemRepo) ListBySection(ctx context.Context, section string, limit int, cursor string) (*repository.ItemPage, error) {
	resource, err := r.b.registry.Resolve(ctx, section)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	offset, err := decodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	r.b.mu.RLock()
	bucket, berr := r.b.bucketLocked(resource)
	if berr != nil {
		r.b.mu.RUnlock()
		return nil, berr
	}
	all := make([]*entity.Item, 0, len(bucket))
	for _, it := range bucket {
		if it.Section == section {
			all = append(all, copyItem(it))
		}
	}
	r.b.mu.RUnlock()

	sortByUpdatedDesc(all)
	if offset >= len(all) {
		return &repository.ItemPage{Items: []*entity.Item{}}, nil
	}
	end := offset + limit
	next := ""
	if end < len(all) {
		next = encodeCursor(end)
	} else {
		end = len(all)
	}
	return &repository.ItemPage{Items: all[offset:end], NextCursor: next}, nil
}

// Update reemplaza el registro preservando su clave de partición: un replace
// con Category distinta a la persistida es un bug de corrección y se rechaza.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	resource, err := r.b.registry.Resolve(ctx, item.Section)
	if err != nil {
		return err
	}
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	bucket, err := r.b.bucketLocked(resource)
	if err != nil {
		return err
	}
	current, ok := bucket[item.ID]
	if !ok {
		return nil
	}
	if current.Category != item.Category {
		return fmt.Errorf("%w: replace con clave de partición distinta (%s != %s)",
			domain.ErrConflict, item.Category, current.Category)
	}
	bucket[item.ID] = copyItem(item)
	return nil
}

// ReplaceCategory operación estructural: delete bajo la clave vieja + insert
// bajo la nueva. nil si el item no existe.
func (r *ItemRepo) ReplaceCategory(ctx context.Context, id, section, newCategory string) (*entity.Item, error) {
	resource, err := r.b.registry.Resolve(ctx, section)
	if err != nil {
		return nil, err
	}
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	bucket, err := r.b.bucketLocked(resource)
	if err != nil {
		return nil, err
	}
	current, ok := bucket[id]
	if !ok {
		return nil, nil
	}
	delete(bucket, id)
	moved := copyItem(current)
	moved.Category = newCategory
	moved.UpdatedAt = time.Now().UTC()
	bucket[id] = moved
	return copyItem(moved), nil
}

// Delete false (sin error) si no existe.
func (r *ItemRepo) Delete(ctx context.Context, id, section string) (bool, error) {
	resource, err := r.b.registry.Resolve(ctx, section)
	if err != nil {
		return false, err
	}
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	bucket, err := r.b.bucketLocked(resource)
	if err != nil {
		return false, err
	}
	if _, ok := bucket[id]; !ok {
		return false, nil
	}
	delete(bucket, id)
	return true, nil
}

// AdjustQuantity aplica el delta. nil si no existe.
func (r *ItemRepo) AdjustQuantity(ctx context.Context, id, section string, delta int) (*entity.Item, error) {
	resource, err := r.b.registry.Resolve(ctx, section)
	if err != nil {
		return nil, err
	}
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	bucket, err := r.b.bucketLocked(resource)
	if err != nil {
		return nil, err
	}
	item, ok := bucket[id]
	if !ok {
		return nil, nil
	}
	item.Quantity += delta
	item.UpdatedAt = time.Now().UTC()
	return copyItem(item), nil
}

// Search texto libre normalizado (query llega ya plegada por el caso de uso).
func (r *ItemRepo) Search(ctx context.Context, section, query, category string, limit int) ([]*entity.Item, int, error) {
	resource, err := r.b.registry.Resolve(ctx, section)
	if err != nil {
		return nil, 0, err
	}
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	bucket, err := r.b.bucketLocked(resource)
	if err != nil {
		return nil, 0, err
	}
	var matched []*entity.Item
	for _, it := range bucket {
		if it.Section != section {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		if query != "" && !contains(it, query) {
			continue
		}
		matched = append(matched, copyItem(it))
	}
	sortByUpdatedDesc(matched)
	total := len(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// ListLowStock items con quantity <= minQuantity.
func (r *ItemRepo) ListLowStock(ctx context.Context, section string) ([]*entity.Item, error) {
	resource, err := r.b.registry.Resolve(ctx, section)
	if err != nil {
		return nil, err
	}
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	bucket, err := r.b.bucketLocked(resource)
	if err != nil {
		return nil, err
	}
	var low []*entity.Item
	for _, it := range bucket {
		if it.Section == section && it.Quantity <= it.MinQuantity {
			low = append(low, copyItem(it))
		}
	}
	sortByUpdatedDesc(low)
	return low, nil
}

func contains(it *entity.Item, foldedQuery string) bool {
	return strings.Contains(textutil.Fold(it.Name), foldedQuery) ||
		strings.Contains(textutil.Fold(it.Description), foldedQuery)
}

func encodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 0 {
		return 0, domain.ErrInvalidInput
	}
	return n, nil
}
