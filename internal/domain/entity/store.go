package entity

import "time"

// Estados de ciclo de vida de una tienda.
const (
	StoreStatusActive   = "ACTIVE"
	StoreStatusArchived = "ARCHIVED"
)

// Store representa una tienda o sucursal lógica dentro de una sección
// (un minorista físico, un hospital, un campamento de ayuda).
// Resource es el nombre del recurso físico de respaldo; se genera de forma
// estable y desacoplada del nombre visible, que es solo un atributo del registro.
type Store struct {
	ID        string
	Name      string
	Section   string
	Resource  string // tabla física de items que respalda la tienda
	Status    string // ACTIVE | ARCHIVED
	IsDefault bool   // las tiendas por defecto comparten el recurso de su sección y no se pueden eliminar
	CreatedAt time.Time
	UpdatedAt time.Time
}
