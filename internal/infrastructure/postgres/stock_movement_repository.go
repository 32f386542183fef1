package postgres

import (
	"context"
	"fmt"

	"github.com/tekeliveli/stoktakip/internal/domain"
	"github.com/tekeliveli/stoktakip/internal/domain/entity"
	"github.com/tekeliveli/stoktakip/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo movimientos producción/venta con pgx. movement_date es DATE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento y asigna su ID.
func (r *StockMovementRepo) Create(ctx context.Context, mov *entity.StockMovement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_movements (material_id, movement_date, produced, sold, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		mov.MaterialID, mov.Date, mov.Produced, mov.Sold, mov.CreatedAt,
	).Scan(&mov.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: material %d", domain.ErrNotFound, mov.MaterialID)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: cantidades negativas", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByMaterial lista los movimientos de un material en orden de inserción.
func (r *StockMovementRepo) ListByMaterial(ctx context.Context, materialID int64) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, material_id, movement_date, produced, sold, created_at
		FROM stock_movements WHERE material_id = $1 ORDER BY id`, materialID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.MaterialID, &m.Date, &m.Produced, &m.Sold, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// TotalsByMaterial ΣProduced y ΣSold del material.
func (r *StockMovementRepo) TotalsByMaterial(ctx context.Context, materialID int64) (int64, int64, error) {
	var produced, sold int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(produced), 0)::BIGINT, COALESCE(SUM(sold), 0)::BIGINT
		FROM stock_movements WHERE material_id = $1`, materialID).Scan(&produced, &sold)
	if err != nil {
		return 0, 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return produced, sold, nil
}
