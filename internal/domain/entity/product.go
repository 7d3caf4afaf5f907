package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock actual.
// Quantity solo lo muta el libro de inventario; nunca es negativo.
type Product struct {
	ID        string
	Name      string
	Quantity  int64           // stock actual, entero >= 0
	MinStock  int64           // umbral de alerta de stock bajo
	Cost      decimal.Decimal // costo unitario
	Price     decimal.Decimal // precio de venta
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LowStock indica si el producto está en o por debajo de su stock mínimo.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinStock
}
