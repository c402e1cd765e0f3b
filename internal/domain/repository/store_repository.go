package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StoreRepository puerto de persistencia para el registro de tiendas.
type StoreRepository interface {
	// Create retorna domain.ErrDuplicate si ya existe una tienda con el mismo
	// nombre en la sección (constraint único que cierra la carrera de creación
	// concurrente).
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	// List filtra por sección; vacío = todas.
	List(ctx context.Context, section string) ([]*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	// Delete retorna false (sin error) si la fila no existe.
	Delete(ctx context.Context, id string) (bool, error)
}

// ResourceProvisioner aprovisiona/desaprovisiona el recurso físico de respaldo
// de una tienda. Provision es idempotente ("create if not exists"); Deprovision
// trata recurso-ya-ausente como éxito.
//
// El ciclo de vida aprovisiona ANTES de registrar: un recurso aprovisionado sin
// registrar es un huérfano recuperable, una tienda registrada sin recurso falla
// en la primera escritura.
type ResourceProvisioner interface {
	Provision(ctx context.Context, resource string) error
	Deprovision(ctx context.Context, resource string) error
}
