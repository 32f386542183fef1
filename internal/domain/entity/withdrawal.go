package entity

import "time"

// Withdrawal salida manual de stock fuera del flujo producción/venta.
type Withdrawal struct {
	ID         int64
	MaterialID int64
	Quantity   int64
	CreatedAt  time.Time
}
