package repository

import (
	"context"

	"github.com/tekeliveli/stoktakip/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos producción/venta (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByMaterial devuelve los movimientos en orden de inserción.
	ListByMaterial(ctx context.Context, materialID int64) ([]*entity.StockMovement, error)
	// TotalsByMaterial devuelve ΣProduced y ΣSold de todo el historial del material.
	TotalsByMaterial(ctx context.Context, materialID int64) (produced, sold int64, err error)
}
