package repository

import (
	"context"
	"time"

	"github.com/tekeliveli/stoktakip/internal/domain/entity"
)

// StockQueryRepository consultas de solo lectura sobre materiales + movimientos + salidas.
// Cada método responde con una única lectura consistente.
type StockQueryRepository interface {
	// Balances devuelve un StockBalance por material registrado, ordenado por ID.
	Balances(ctx context.Context) ([]entity.StockBalance, error)
	// BalanceOf devuelve (nil, nil) si el material no existe.
	BalanceOf(ctx context.Context, materialID int64) (*entity.StockBalance, error)
	// PeriodTotals agrega movimientos con fecha en [from, to]; omite materiales sin movimientos en el rango.
	PeriodTotals(ctx context.Context, from, to time.Time) ([]entity.PeriodTotals, error)
}
