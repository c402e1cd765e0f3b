package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción que afectan stock.
const (
	TransactionTypeSale          = "SALE"
	TransactionTypeInternalUsage = "INTERNAL_USAGE"
	TransactionTypeDamage        = "DAMAGE"
	TransactionTypeExpiry        = "EXPIRY"
)

// TransactionLine una línea de la transacción. Inmutable una vez creada la
// transacción: las correcciones generan una transacción nueva.
type TransactionLine struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Tax       decimal.Decimal `json:"tax"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Transaction registro inmutable de un evento que afecta stock (venta, uso
// interno, daño, vencimiento). La creación de la transacción NO decrementa
// items por sí misma; ese es el flujo de venta (ver application/inventory).
type Transaction struct {
	ID             string
	InvoiceNumber  string
	Timestamp      time.Time
	Type           string // SALE | INTERNAL_USAGE | DAMAGE | EXPIRY
	Lines          []TransactionLine
	TotalAmount    decimal.Decimal
	PaymentMethod  string
	CustomerName   string // opcional
	Section        string
	PerformedBy    string
	IdempotencyKey string // única; hace seguros los reintentos del flujo de venta
}
