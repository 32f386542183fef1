package postgres

import (
	"context"
	"fmt"

	"github.com/tekeliveli/stoktakip/internal/domain"
	"github.com/tekeliveli/stoktakip/internal/domain/entity"
	"github.com/tekeliveli/stoktakip/internal/domain/repository"
)

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

// WithdrawalRepo salidas manuales con pgx.
type WithdrawalRepo struct {
	q Querier
}

// NewWithdrawalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWithdrawalRepository(q Querier) *WithdrawalRepo {
	return &WithdrawalRepo{q: q}
}

// Create persiste una salida y asigna su ID.
func (r *WithdrawalRepo) Create(ctx context.Context, w *entity.Withdrawal) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO withdrawals (material_id, quantity, created_at) VALUES ($1, $2, $3)
		RETURNING id`,
		w.MaterialID, w.Quantity, w.CreatedAt,
	).Scan(&w.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: material %d", domain.ErrNotFound, w.MaterialID)
		}
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// ListByMaterial lista las salidas de un material en orden de registro.
func (r *WithdrawalRepo) ListByMaterial(ctx context.Context, materialID int64) ([]*entity.Withdrawal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, material_id, quantity, created_at
		FROM withdrawals WHERE material_id = $1 ORDER BY id`, materialID)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Withdrawal
	for rows.Next() {
		var w entity.Withdrawal
		if err := rows.Scan(&w.ID, &w.MaterialID, &w.Quantity, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// TotalByMaterial ΣQuantity de las salidas del material.
func (r *WithdrawalRepo) TotalByMaterial(ctx context.Context, materialID int64) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)::BIGINT FROM withdrawals WHERE material_id = $1`, materialID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum withdrawals: %w", err)
	}
	return total, nil
}
