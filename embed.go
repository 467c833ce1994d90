// Package veriweb exposes assets that ship with the binary.
package veriweb

import "embed"

// Migrations contains the SQL migration files applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
