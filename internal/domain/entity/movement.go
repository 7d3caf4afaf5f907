package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSalida  = "salida"
)

// Movement es una entrada inmutable del diario de stock: se crea una vez y
// nunca se actualiza ni se borra (salvo la purga administrativa masiva).
// Invariante: NewQuantity = PreviousQuantity + Quantity para entrada,
// PreviousQuantity - Quantity para salida.
type Movement struct {
	ID               string
	ProductID        string
	Type             string // entrada | salida
	Quantity         int64  // siempre > 0; el signo lo da Type
	Reason           string // motivo obligatorio: "COMPRA", "FIADO A <cliente>", etc.
	PreviousQuantity int64
	NewQuantity      int64
	CreatedAt        time.Time
}
