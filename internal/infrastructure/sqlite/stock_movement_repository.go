package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/tekeliveli/stoktakip/internal/domain/entity"
	domaininv "github.com/tekeliveli/stoktakip/internal/domain/inventory"
	"github.com/tekeliveli/stoktakip/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo movimientos producción/venta sobre SQLite. Las fechas se guardan
// como TEXT YYYY-MM-DD, que ordena y compara igual que la fecha.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar db o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento y asigna su ID.
func (r *StockMovementRepo) Create(ctx context.Context, mov *entity.StockMovement) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO stock_movements (material_id, movement_date, produced, sold, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		mov.MaterialID, domaininv.FormatDate(mov.Date), mov.Produced, mov.Sold, toMillis(mov.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert stock movement id: %w", err)
	}
	mov.ID = id
	return nil
}

// ListByMaterial lista los movimientos de un material en orden de inserción.
func (r *StockMovementRepo) ListByMaterial(ctx context.Context, materialID int64) ([]*entity.StockMovement, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, material_id, movement_date, produced, sold, created_at
		FROM stock_movements WHERE material_id = ? ORDER BY id`, materialID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var date string
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.MaterialID, &date, &m.Produced, &m.Sold, &createdAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		d, err := time.Parse(domaininv.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse movement_date %q: %w", date, err)
		}
		m.Date = d
		m.CreatedAt = fromMillis(createdAt)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// TotalsByMaterial ΣProduced y ΣSold del material.
func (r *StockMovementRepo) TotalsByMaterial(ctx context.Context, materialID int64) (int64, int64, error) {
	var produced, sold int64
	err := r.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(produced), 0), COALESCE(SUM(sold), 0)
		FROM stock_movements WHERE material_id = ?`, materialID).Scan(&produced, &sold)
	if err != nil {
		return 0, 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return produced, sold, nil
}
