// Package db embeds the goose migrations for each supported dialect.
package db

import (
	"embed"
	"io/fs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Migrations returns the migration directory for the given goose dialect.
func Migrations(dialect string) (fs.FS, error) {
	dir := "migrations/sqlite"
	if dialect == "postgres" {
		dir = "migrations/postgres"
	}
	return fs.Sub(migrations, dir)
}
