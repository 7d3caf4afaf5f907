package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // entrada | salida
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
}

// RegisterMovementBatchRequest body para POST /api/inventory/movements/batch.
// Todos los ítems se aplican en una sola transacción: o entran todos o ninguno.
type RegisterMovementBatchRequest struct {
	Items []RegisterMovementRequest `json:"items"`
}

// MovementResponse representa una entrada del diario de movimientos.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	Type             string    `json:"type"`
	Quantity         int64     `json:"quantity"`
	Reason           string    `json:"reason"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProductResponse es la vista del producto que expone el libro de inventario.
type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	MinStock int64           `json:"min_stock"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
	LowStock bool            `json:"low_stock"`
}
