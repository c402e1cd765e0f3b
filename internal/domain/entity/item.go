package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock derivados de Quantity vs MinQuantity.
const (
	StatusInStock    = "IN_STOCK"
	StatusLowStock   = "LOW_STOCK"
	StatusOutOfStock = "OUT_OF_STOCK"
)

// Item representa una unidad de inventario (SKU) propiedad de exactamente una tienda.
// Category es además la clave de partición del recurso de respaldo: debe viajar sin
// cambios en cada replace/delete; cambiarla es una operación estructural
// (delete + insert bajo la nueva clave), nunca un update de campo.
type Item struct {
	ID              string
	Name            string
	Category        string // clave de partición
	Quantity        int
	MinQuantity     int // umbral de reorden
	UnitPrice       decimal.Decimal
	Unit            string
	BatchNumber     string
	Supplier        string
	Description     string
	ExpiryDate      *time.Time
	ManufactureDate *time.Time
	OwnerID         string // Store.ID propietario
	Section         string
	UpdatedAt       time.Time
}

// Status deriva el estado de stock canónico:
// quantity <= 0 -> OUT_OF_STOCK; quantity <= minQuantity -> LOW_STOCK; si no IN_STOCK.
// No se almacena desnormalizado, así nunca queda obsoleto.
func (i *Item) Status() string {
	switch {
	case i.Quantity <= 0:
		return StatusOutOfStock
	case i.Quantity <= i.MinQuantity:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
