package migrations

import "embed"

// FS contiene el esquema PostgreSQL del libro de stock.
//
//go:embed *.sql
var FS embed.FS
