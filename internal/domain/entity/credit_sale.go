package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditSale es la cabecera de una venta fiada. Total queda fijo al crearla;
// OutstandingBalance arranca igual a Total y baja a medida que se marcan
// renglones como pagados.
type CreditSale struct {
	ID                 string
	CustomerID         string
	Date               time.Time
	Total              decimal.Decimal
	OutstandingBalance decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreditSaleLineItem es un renglón de venta fiada con nombre y precio del
// producto congelados al momento de la venta. Paid solo transiciona false -> true.
type CreditSaleLineItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Paid        bool
	PaidAt      *time.Time
}

// Open indica si la venta aún tiene saldo pendiente.
func (s *CreditSale) Open() bool {
	return s.OutstandingBalance.GreaterThan(decimal.Zero)
}
