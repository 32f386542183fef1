package entity

import "time"

// StockMovement registro fechado de cantidades producidas y vendidas de un material.
// Solo se agrega; nunca se modifica ni se elimina.
type StockMovement struct {
	ID         int64
	MaterialID int64
	Date       time.Time // fecha calendario (medianoche UTC)
	Produced   int64
	Sold       int64
	CreatedAt  time.Time
}
