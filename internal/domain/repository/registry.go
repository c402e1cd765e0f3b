package repository

import "context"

// ResourceRegistry resuelve nombres lógicos de sección/tienda al recurso físico
// que los respalda. Orden de búsqueda: mapa estático de secciones, caché
// dinámica poblada desde el registro persistido de tiendas y, ante un fallo,
// un único Refresh antes de declarar domain.ErrResourceNotFound.
//
// La resolución falla cerrada: nunca se sustituye un nombre desconocido por un
// recurso por defecto (eso sería una fuga de datos entre tenants).
type ResourceRegistry interface {
	// Resolve devuelve el recurso físico para el nombre lógico dado.
	Resolve(ctx context.Context, name string) (string, error)
	// Refresh recarga la caché dinámica desde el registro de tiendas persistido.
	// Idempotente y seguro ante llamadas concurrentes (last-writer-wins).
	Refresh(ctx context.Context) error
	// Put inserta o reemplaza una entrada dinámica (lo usa el ciclo de vida de tiendas).
	Put(name, resource string)
	// Remove elimina una entrada dinámica de la caché.
	Remove(name string)
}
