package store

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationsFS returns the embedded SQL migrations rooted at the
// migration files themselves, ready for an iofs source.
func MigrationsFS() (fs.FS, error) {
	return fs.Sub(migrationFiles, "migrations")
}
