package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tekeliveli/stoktakip/internal/domain/entity"
	domaininv "github.com/tekeliveli/stoktakip/internal/domain/inventory"
	"github.com/tekeliveli/stoktakip/internal/domain/repository"
)

var _ repository.StockQueryRepository = (*StockQueryRepo)(nil)

// StockQueryRepo lecturas agregadas del libro sobre SQLite.
type StockQueryRepo struct {
	q Querier
}

// NewStockQueryRepository construye el adaptador de consultas.
func NewStockQueryRepository(q Querier) *StockQueryRepo {
	return &StockQueryRepo{q: q}
}

const balanceQuery = `
	SELECT
	    m.id, m.name, m.description, m.unit, m.initial_stock, m.created_at, m.updated_at,
	    COALESCE(s.produced, 0)  AS total_produced,
	    COALESCE(s.sold, 0)      AS total_sold,
	    COALESCE(w.withdrawn, 0) AS total_withdrawn
	FROM materials m
	LEFT JOIN (
	    SELECT material_id, SUM(produced) AS produced, SUM(sold) AS sold
	    FROM stock_movements GROUP BY material_id
	) s ON s.material_id = m.id
	LEFT JOIN (
	    SELECT material_id, SUM(quantity) AS withdrawn
	    FROM withdrawals GROUP BY material_id
	) w ON w.material_id = m.id`

// Balances un StockBalance por material, ordenado por ID.
func (r *StockQueryRepo) Balances(ctx context.Context) ([]entity.StockBalance, error) {
	rows, err := r.q.QueryContext(ctx, balanceQuery+` ORDER BY m.id`)
	if err != nil {
		return nil, fmt.Errorf("stock.Balances: %w", err)
	}
	defer rows.Close()
	var out []entity.StockBalance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("stock.Balances scan: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// BalanceOf StockBalance de un material; (nil, nil) si no existe.
func (r *StockQueryRepo) BalanceOf(ctx context.Context, materialID int64) (*entity.StockBalance, error) {
	b, err := scanBalance(r.q.QueryRowContext(ctx, balanceQuery+` WHERE m.id = ?`, materialID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("stock.BalanceOf: %w", err)
	}
	return b, nil
}

// PeriodTotals agrega producción y venta por material en [from, to].
func (r *StockQueryRepo) PeriodTotals(ctx context.Context, from, to time.Time) ([]entity.PeriodTotals, error) {
	const query = `
	SELECT
	    m.id, m.name, m.description, m.unit, m.initial_stock, m.created_at, m.updated_at,
	    SUM(s.produced) AS total_produced,
	    SUM(s.sold)     AS total_sold
	FROM materials m
	JOIN stock_movements s ON s.material_id = m.id
	WHERE s.movement_date BETWEEN ? AND ?
	GROUP BY m.id
	ORDER BY m.id`

	rows, err := r.q.QueryContext(ctx, query, domaininv.FormatDate(from), domaininv.FormatDate(to))
	if err != nil {
		return nil, fmt.Errorf("stock.PeriodTotals: %w", err)
	}
	defer rows.Close()
	var out []entity.PeriodTotals
	for rows.Next() {
		var p entity.PeriodTotals
		var createdAt, updatedAt int64
		if err := rows.Scan(
			&p.Material.ID, &p.Material.Name, &p.Material.Description, &p.Material.Unit,
			&p.Material.InitialStock, &createdAt, &updatedAt,
			&p.TotalProduced, &p.TotalSold,
		); err != nil {
			return nil, fmt.Errorf("stock.PeriodTotals scan: %w", err)
		}
		p.Material.CreatedAt = fromMillis(createdAt)
		p.Material.UpdatedAt = fromMillis(updatedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanBalance(s rowScanner) (*entity.StockBalance, error) {
	var b entity.StockBalance
	var createdAt, updatedAt int64
	if err := s.Scan(
		&b.Material.ID, &b.Material.Name, &b.Material.Description, &b.Material.Unit,
		&b.Material.InitialStock, &createdAt, &updatedAt,
		&b.TotalProduced, &b.TotalSold, &b.TotalWithdrawn,
	); err != nil {
		return nil, err
	}
	b.Material.CreatedAt = fromMillis(createdAt)
	b.Material.UpdatedAt = fromMillis(updatedAt)
	return &b, nil
}
