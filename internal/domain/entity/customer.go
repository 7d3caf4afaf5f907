package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente con cuenta de fiado.
// OutstandingBalance es un agregado derivado: suma de los saldos de sus ventas fiadas.
type Customer struct {
	ID                 string
	Name               string
	TaxID              string // NIT o Cédula
	Phone              string
	OutstandingBalance decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
