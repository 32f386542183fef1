package repository

import (
	"context"

	"github.com/tekeliveli/stoktakip/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el material no existe.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id int64) (*entity.Material, error)
	// GetForUpdate bloquea el material hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Material, error)
	List(ctx context.Context) ([]*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
}
