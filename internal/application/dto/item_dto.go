package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest datos para crear un item de inventario.
type CreateItemRequest struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Quantity        int             `json:"quantity"`
	MinQuantity     int             `json:"min_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Unit            string          `json:"unit"`
	BatchNumber     string          `json:"batch_number"`
	Supplier        string          `json:"supplier"`
	Description     string          `json:"description"`
	ExpiryDate      *time.Time      `json:"expiry_date"`
	ManufactureDate *time.Time      `json:"manufacture_date"`
	OwnerID         string          `json:"owner_id"`
	Section         string          `json:"section"`
}

// UpdateItemRequest campos opcionales a actualizar. Category no aparece: cambiar
// la clave de partición es una operación estructural (ver ReplaceCategory).
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Quantity    *int             `json:"quantity"`
	MinQuantity *int             `json:"min_quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Unit        *string          `json:"unit"`
	BatchNumber *string          `json:"batch_number"`
	Supplier    *string          `json:"supplier"`
	Description *string          `json:"description"`
	ExpiryDate  *time.Time       `json:"expiry_date"`
}

// ReplaceCategoryRequest cambio estructural de categoría (delete + insert bajo la nueva clave).
type ReplaceCategoryRequest struct {
	Category string `json:"category"`
}

// ItemResponse representación HTTP de un item. Status se deriva al leer.
type ItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Quantity        int             `json:"quantity"`
	MinQuantity     int             `json:"min_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Unit            string          `json:"unit"`
	BatchNumber     string          `json:"batch_number,omitempty"`
	Supplier        string          `json:"supplier,omitempty"`
	Description     string          `json:"description,omitempty"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	ManufactureDate *time.Time      `json:"manufacture_date,omitempty"`
	OwnerID         string          `json:"owner_id"`
	Section         string          `json:"section"`
	Status          string          `json:"status"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemListResponse listado paginado de items.
type ItemListResponse struct {
	Items      []ItemResponse `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// SearchResponse envelope del endpoint de búsqueda.
type SearchResponse struct {
	Results []ItemResponse `json:"results"`
	Count   int            `json:"count"`
	Total   int            `json:"total"`
	Query   string         `json:"query"`
}

// SearchErrorResponse envelope de error de búsqueda: mantiene results vacío
// para que la UI renderice sin ramas especiales.
type SearchErrorResponse struct {
	Error   string         `json:"error"`
	Results []ItemResponse `json:"results"`
	Count   int            `json:"count"`
}
