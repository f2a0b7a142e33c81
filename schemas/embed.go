// Package schemas provides the embedded account store migrations.
package schemas

import "embed"

// Migrations contains the SQL migration files, applied in lexical order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
