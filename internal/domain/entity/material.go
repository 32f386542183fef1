package entity

import "time"

// Límites de longitud de los campos de Material (tamaño de columna en BD).
const (
	MaterialNameMaxLen        = 80
	MaterialDescriptionMaxLen = 200
	MaterialUnitMaxLen        = 20
)

// Material representa un ítem inventariable con su unidad de medida.
// InitialStock es el stock de apertura; el stock actual se deriva del libro.
type Material struct {
	ID           int64
	Name         string
	Description  string
	Unit         string // kg, pcs, lt...
	InitialStock int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
