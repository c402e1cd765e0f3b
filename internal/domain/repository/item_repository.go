package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ItemPage resultado paginado con cursor opaco; NextCursor vacío = última página.
type ItemPage struct {
	Items      []*entity.Item
	NextCursor string
}

// ItemRepository puerto de persistencia para Item (DIP). El adaptador resuelve
// el recurso físico a partir de la sección vía ResourceRegistry; si la
// resolución falla el método retorna domain.ErrResourceNotFound, nunca escribe
// en un recurso equivocado.
//
// Disciplina de clave de partición: Category es la clave del recurso. Update y
// Delete deben operar bajo la clave original del registro; Update nunca cambia
// Category (usar ReplaceCategory, que es delete + insert bajo la nueva clave).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id, section string) (*entity.Item, error)
	// ListBySection lista ordenado por UpdatedAt descendente. limit <= 0 usa el
	// valor por defecto del adaptador; cursor vacío = primera página.
	ListBySection(ctx context.Context, section string, limit int, cursor string) (*ItemPage, error)
	Update(ctx context.Context, item *entity.Item) error
	ReplaceCategory(ctx context.Context, id, section, newCategory string) (*entity.Item, error)
	// Delete retorna false (sin error) si el registro no existe.
	Delete(ctx context.Context, id, section string) (bool, error)
	// AdjustQuantity aplica un delta al stock y retorna el item actualizado.
	// nil si el item no existe. Aritmética entera plana: la validación de
	// "vender más de lo disponible" es responsabilidad del caller.
	AdjustQuantity(ctx context.Context, id, section string, delta int) (*entity.Item, error)
	// Search busca por texto libre (nombre/descripción, sin distinción de
	// mayúsculas ni acentos) con filtro opcional por categoría.
	Search(ctx context.Context, section, query, category string, limit int) ([]*entity.Item, int, error)
	// ListLowStock retorna items con quantity <= minQuantity.
	ListLowStock(ctx context.Context, section string) ([]*entity.Item, error)
}
