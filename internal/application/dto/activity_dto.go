package dto

import "time"

// ActivityResponse evento de auditoría.
type ActivityResponse struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Section   string    `json:"section"`
}

// ActivityListResponse listado de actividades (más recientes primero).
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
}
