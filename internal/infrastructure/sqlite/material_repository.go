package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tekeliveli/stoktakip/internal/domain/entity"
	"github.com/tekeliveli/stoktakip/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre SQLite (usable con db o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar db o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, name, description, unit, initial_stock, created_at, updated_at`

// Create persiste un material y asigna su ID.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO materials (name, description, unit, initial_stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.Name, m.Description, m.Unit, m.InitialStock, toMillis(m.CreatedAt), toMillis(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert material: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert material id: %w", err)
	}
	m.ID = id
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(ctx context.Context, id int64) (*entity.Material, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = ?`, id)
	m, err := scanMaterial(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// GetForUpdate en SQLite equivale a GetByID: la transacción (BEGIN IMMEDIATE sobre
// una única conexión) ya serializa a los escritores.
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

// List lista todos los materiales en orden de registro.
func (r *MaterialRepo) List(ctx context.Context) ([]*entity.Material, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables del material.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE materials SET name = ?, description = ?, unit = ?, initial_stock = ?, updated_at = ?
		WHERE id = ?`,
		m.Name, m.Description, m.Unit, m.InitialStock, toMillis(m.UpdatedAt), m.ID,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(s rowScanner) (*entity.Material, error) {
	var m entity.Material
	var createdAt, updatedAt int64
	if err := s.Scan(&m.ID, &m.Name, &m.Description, &m.Unit, &m.InitialStock, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	m.CreatedAt = fromMillis(createdAt)
	m.UpdatedAt = fromMillis(updatedAt)
	return &m, nil
}
