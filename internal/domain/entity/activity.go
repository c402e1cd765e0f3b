package entity

import "time"

// Tipos de actividad de auditoría.
const (
	ActivityTypeCreate = "create"
	ActivityTypeUpdate = "update"
	ActivityTypeDelete = "delete"
	ActivityTypeAlert  = "alert"
)

// Activity evento de auditoría append-only. Nunca se muta ni se elimina;
// se consulta del más reciente al más antiguo, opcionalmente acotado.
type Activity struct {
	ID        string
	User      string
	Action    string
	Target    string
	Timestamp time.Time
	Type      string // create | update | delete | alert
	Section   string
}
