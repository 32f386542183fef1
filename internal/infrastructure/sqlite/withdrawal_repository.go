package sqlite

import (
	"context"
	"fmt"

	"github.com/tekeliveli/stoktakip/internal/domain/entity"
	"github.com/tekeliveli/stoktakip/internal/domain/repository"
)

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

// WithdrawalRepo salidas manuales sobre SQLite.
type WithdrawalRepo struct {
	q Querier
}

// NewWithdrawalRepository construye el adaptador. Pasar db o tx (Querier).
func NewWithdrawalRepository(q Querier) *WithdrawalRepo {
	return &WithdrawalRepo{q: q}
}

// Create persiste una salida y asigna su ID.
func (r *WithdrawalRepo) Create(ctx context.Context, w *entity.Withdrawal) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO withdrawals (material_id, quantity, created_at) VALUES (?, ?, ?)`,
		w.MaterialID, w.Quantity, toMillis(w.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert withdrawal id: %w", err)
	}
	w.ID = id
	return nil
}

// ListByMaterial lista las salidas de un material en orden de registro.
func (r *WithdrawalRepo) ListByMaterial(ctx context.Context, materialID int64) ([]*entity.Withdrawal, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, material_id, quantity, created_at
		FROM withdrawals WHERE material_id = ? ORDER BY id`, materialID)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Withdrawal
	for rows.Next() {
		var w entity.Withdrawal
		var createdAt int64
		if err := rows.Scan(&w.ID, &w.MaterialID, &w.Quantity, &createdAt); err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		w.CreatedAt = fromMillis(createdAt)
		list = append(list, &w)
	}
	return list, rows.Err()
}

// TotalByMaterial ΣQuantity de las salidas del material.
func (r *WithdrawalRepo) TotalByMaterial(ctx context.Context, materialID int64) (int64, error) {
	var total int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM withdrawals WHERE material_id = ?`, materialID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum withdrawals: %w", err)
	}
	return total, nil
}
