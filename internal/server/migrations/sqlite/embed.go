// Package sqlite embeds the goose migrations for the embedded SQLite backend.
package sqlite

import "embed"

//go:embed *.sql
var Migrations embed.FS
