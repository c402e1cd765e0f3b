package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta (o uso interno/daño/vencimiento).
type SaleLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity int             `json:"quantity"`
	Tax      decimal.Decimal `json:"tax"`
}

// RegisterSaleRequest flujo de venta: crea la transacción y decrementa el stock
// de cada línea. IdempotencyKey hace seguro reintentar tras "outcome unknown".
type RegisterSaleRequest struct {
	Type           string            `json:"type"` // SALE | INTERNAL_USAGE | DAMAGE | EXPIRY
	Lines          []SaleLineRequest `json:"lines"`
	PaymentMethod  string            `json:"payment_method"`
	CustomerName   string            `json:"customer_name"`
	Section        string            `json:"section"`
	IdempotencyKey string            `json:"idempotency_key"`
}

// TransactionLineResponse línea persistida de la transacción.
type TransactionLineResponse struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Tax       decimal.Decimal `json:"tax"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// TransactionResponse representación HTTP de una transacción.
type TransactionResponse struct {
	ID            string                    `json:"id"`
	InvoiceNumber string                    `json:"invoice_number"`
	Timestamp     time.Time                 `json:"timestamp"`
	Type          string                    `json:"type"`
	Lines         []TransactionLineResponse `json:"lines"`
	TotalAmount   decimal.Decimal           `json:"total_amount"`
	PaymentMethod string                    `json:"payment_method,omitempty"`
	CustomerName  string                    `json:"customer_name,omitempty"`
	Section       string                    `json:"section"`
	PerformedBy   string                    `json:"performed_by"`
}

// TransactionListResponse listado de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
}
