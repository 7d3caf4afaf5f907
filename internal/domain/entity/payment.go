package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment es un registro append-only: el abono que liquidó uno o más
// renglones de una venta fiada en una sola operación.
type Payment struct {
	ID         string
	CustomerID string
	SaleID     string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}
