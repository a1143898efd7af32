// Package migrations embeds SQL migration files into the binary, so a
// till can migrate its own database without SQL files present on disk.
package migrations

import (
	"embed"

	"github.com/tillworks/tillpos/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	// Register embedded migrations with the database package.
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // files sit at the root of the embedded FS
}
