package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ActivityRepository puerto append-only para el rastro de auditoría.
type ActivityRepository interface {
	Append(ctx context.Context, activity *entity.Activity) error
	// ListBySection más recientes primero; limit <= 0 usa el tope del adaptador.
	ListBySection(ctx context.Context, section string, limit int) ([]*entity.Activity, error)
}
