package migrations

import "embed"

// FS contiene las migraciones SQLite embebidas del libro de stock.
//
//go:embed *.sql
var FS embed.FS
