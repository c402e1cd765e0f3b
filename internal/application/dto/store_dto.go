package dto

import "time"

// CreateStoreRequest datos para aprovisionar una tienda nueva.
type CreateStoreRequest struct {
	Name    string `json:"name"`
	Section string `json:"section"`
}

// RenameStoreRequest actualización del registro de una tienda.
type RenameStoreRequest struct {
	Name *string `json:"name"`
}

// StoreResponse representación HTTP de una tienda.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Section   string    `json:"section"`
	Status    string    `json:"status"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreListResponse listado de tiendas.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
}
