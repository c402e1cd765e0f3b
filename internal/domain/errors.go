package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrResourceNotFound: el registro no pudo resolver la sección/tienda a un
	// recurso físico, incluso después de un refresco. Nunca se sustituye por un
	// recurso por defecto.
	ErrResourceNotFound = errors.New("recurso de sección/tienda no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	// ErrConflict: el estado actual no permite la operación (p. ej. transición
	// de orden de compra desde un estado terminal, o replace con estado obsoleto).
	ErrConflict = errors.New("conflicto con el estado actual")
)
