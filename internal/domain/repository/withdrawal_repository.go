package repository

import (
	"context"

	"github.com/tekeliveli/stoktakip/internal/domain/entity"
)

// WithdrawalRepository define el puerto de persistencia para salidas manuales (DIP).
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *entity.Withdrawal) error
	ListByMaterial(ctx context.Context, materialID int64) ([]*entity.Withdrawal, error)
	TotalByMaterial(ctx context.Context, materialID int64) (int64, error)
}
