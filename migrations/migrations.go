// Package migrations embeds the schema migrations for every results store.
package migrations

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// Postgres returns a migration source over the embedded PostgreSQL schema.
func Postgres() (source.Driver, error) {
	src, err := iofs.New(postgresFS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("opening postgres migrations: %w", err)
	}
	return src, nil
}

// SQLite returns a migration source over the embedded SQLite schema.
func SQLite() (source.Driver, error) {
	src, err := iofs.New(sqliteFS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite migrations: %w", err)
	}
	return src, nil
}
