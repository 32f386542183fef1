package dto

import "time"

// CreateMaterialRequest body para POST /materials.
// InitialStock es puntero para distinguir "ausente" de 0.
type CreateMaterialRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	InitialStock *int64 `json:"initial_stock"`
	Unit         string `json:"unit"`
}

// UpdateMaterialRequest body para PUT /materials/:id (actualización parcial).
type UpdateMaterialRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	InitialStock *int64  `json:"initial_stock"`
	Unit         *string `json:"unit"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	InitialStock int64     `json:"initial_stock"`
	Unit         string    `json:"unit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
