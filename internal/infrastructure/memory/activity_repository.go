package memory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo rastro de auditoría append-only sobre el backend en memoria.
type ActivityRepo struct {
	b *Backend
}

// NewActivityRepository construye la vista.
func NewActivityRepository(b *Backend) *ActivityRepo {
	return &ActivityRepo{b: b}
}

// Append agrega el evento. No existe operación de borrado ni mutación.
func (r *ActivityRepo) Append(_ context.Context, activity *entity.Activity) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	c := *activity
	r.b.activities = append(r.b.activities, &c)
	return nil
}

// ListBySection más recientes primero, acotado por limit.
func (r *ActivityRepo) ListBySection(_ context.Context, section string, limit int) ([]*entity.Activity, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	var out []*entity.Activity
	// El slice crece por append: recorrer de atrás hacia adelante ya da el
	// orden más-reciente-primero.
	for i := len(r.b.activities) - 1; i >= 0; i-- {
		a := r.b.activities[i]
		if a.Section != section {
			continue
		}
		c := *a
		out = append(out, &c)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
