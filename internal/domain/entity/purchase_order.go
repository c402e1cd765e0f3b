package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de compra.
// Máquina: DRAFT→PENDING→(APPROVED)→PARTIALLY_RECEIVED→RECEIVED, o PENDING→CANCELLED.
// RECEIVED y CANCELLED son terminales.
const (
	POStatusDraft             = "DRAFT"
	POStatusPending           = "PENDING"
	POStatusApproved          = "APPROVED"
	POStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	POStatusReceived          = "RECEIVED"
	POStatusCancelled         = "CANCELLED"
)

// POLine línea de una orden de compra.
type POLine struct {
	ItemID            string          `json:"item_id"`
	Name              string          `json:"name"`
	CurrentStock      int             `json:"current_stock"` // snapshot al crear la orden
	RequestedQuantity int             `json:"requested_quantity"`
	Unit              string          `json:"unit"`
	Section           string          `json:"section"`
	ReceivedQuantity  int             `json:"received_quantity,omitempty"`
	ReceivedPrice     decimal.Decimal `json:"received_price,omitempty"`
}

// PurchaseOrder solicitud de reabastecimiento que avanza por la máquina de estados.
type PurchaseOrder struct {
	ID            string
	PONumber      string
	CreatedAt     time.Time
	Status        string
	Lines         []POLine
	EstimatedCost decimal.Decimal
	Vendor        string
	Notes         string
	CreatedBy     string
	ApprovedBy    string
	ReceivedAt    *time.Time
	Section       string
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminalPOStatus(status string) bool {
	return status == POStatusReceived || status == POStatusCancelled
}

// CanReceive indica si la orden admite recepción de mercancía.
func (po *PurchaseOrder) CanReceive() bool {
	return po.Status == POStatusPending || po.Status == POStatusApproved || po.Status == POStatusPartiallyReceived
}

// CanCancel indica si la orden admite cancelación.
func (po *PurchaseOrder) CanCancel() bool {
	return po.Status == POStatusDraft || po.Status == POStatusPending
}
