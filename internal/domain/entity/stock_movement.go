package entity

import "time"

// Direcciones de movimiento de stock.
const (
	DirectionIn  = "IN"  // entrada
	DirectionOut = "OUT" // salida
)

// StockMovement es una entrada inmutable del libro de movimientos.
// PreviousQuantity y NewQuantity dejan constancia del stock alrededor
// del movimiento; las correcciones se hacen con movimientos compensatorios,
// nunca editando registros.
type StockMovement struct {
	ID               string
	ProductID        string
	Direction        string // IN, OUT
	Quantity         int64  // siempre > 0; el signo lo da Direction
	PreviousQuantity int64
	NewQuantity      int64
	Note             string
	CreatedAt        time.Time
}

// SignedQuantity devuelve la cantidad con signo (+entrada, -salida).
func (m *StockMovement) SignedQuantity() int64 {
	if m.Direction == DirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}

// IsValidDirection valida una dirección de movimiento.
func IsValidDirection(d string) bool {
	return d == DirectionIn || d == DirectionOut
}
