package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo rastro de auditoría append-only sobre PostgreSQL.
// No expone UPDATE ni DELETE: las actividades jamás se mutan.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Append inserta el evento.
func (r *ActivityRepo) Append(ctx context.Context, activity *entity.Activity) error {
	query := `
		INSERT INTO activities (id, usr, action, target, ts, type, section)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		activity.ID, activity.User, activity.Action, activity.Target,
		activity.Timestamp, activity.Type, activity.Section,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListBySection más recientes primero, acotado por limit.
func (r *ActivityRepo) ListBySection(ctx context.Context, section string, limit int) ([]*entity.Activity, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, usr, action, target, ts, type, section
		FROM activities
		WHERE section = $1
		ORDER BY ts DESC, id
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, section, limit)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.User, &a.Action, &a.Target, &a.Timestamp, &a.Type, &a.Section); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
