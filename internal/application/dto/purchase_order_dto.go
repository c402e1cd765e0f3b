package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// POLineRequest línea de una orden de compra nueva.
type POLineRequest struct {
	ItemID            string `json:"item_id"`
	RequestedQuantity int    `json:"requested_quantity"`
}

// CreatePORequest datos para crear una orden de compra.
type CreatePORequest struct {
	Lines   []POLineRequest `json:"lines"`
	Vendor  string          `json:"vendor"`
	Notes   string          `json:"notes"`
	Section string          `json:"section"`
	// Draft true deja la orden en DRAFT en vez de PENDING.
	Draft bool `json:"draft"`
}

// UpdatePORequest patch sobre una orden; CurrentStatus es obligatorio y actúa
// como verificación optimista (replace-by-key).
type UpdatePORequest struct {
	Vendor        *string `json:"vendor"`
	Notes         *string `json:"notes"`
	Status        *string `json:"status"`
	ApprovedBy    *string `json:"approved_by"`
	CurrentStatus string  `json:"current_status"`
}

// ReceivePOLineRequest recepción de una línea.
type ReceivePOLineRequest struct {
	ItemID           string          `json:"item_id"`
	ReceivedQuantity int             `json:"received_quantity"`
	ReceivedPrice    decimal.Decimal `json:"received_price"`
}

// ReceivePORequest recepción total o parcial de una orden PENDING/APPROVED/PARTIALLY_RECEIVED.
type ReceivePORequest struct {
	Lines []ReceivePOLineRequest `json:"lines"`
}

// POLineResponse línea persistida.
type POLineResponse struct {
	ItemID            string          `json:"item_id"`
	Name              string          `json:"name"`
	CurrentStock      int             `json:"current_stock"`
	RequestedQuantity int             `json:"requested_quantity"`
	Unit              string          `json:"unit"`
	Section           string          `json:"section"`
	ReceivedQuantity  int             `json:"received_quantity,omitempty"`
	ReceivedPrice     decimal.Decimal `json:"received_price,omitempty"`
}

// POResponse representación HTTP de una orden de compra.
type POResponse struct {
	ID            string           `json:"id"`
	PONumber      string           `json:"po_number"`
	CreatedAt     time.Time        `json:"created_at"`
	Status        string           `json:"status"`
	Lines         []POLineResponse `json:"lines"`
	EstimatedCost decimal.Decimal  `json:"estimated_cost"`
	Vendor        string           `json:"vendor,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedBy     string           `json:"created_by"`
	ApprovedBy    string           `json:"approved_by,omitempty"`
	ReceivedAt    *time.Time       `json:"received_at,omitempty"`
	Section       string           `json:"section"`
}

// POListResponse listado de órdenes de compra.
type POListResponse struct {
	Items []POResponse `json:"items"`
}
