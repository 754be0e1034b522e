// Package migrate aplica el esquema de base de datos con goose.
// Las migraciones viajan embebidas en el binario: el despliegue no
// necesita archivos SQL sueltos.
package migrate

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib" // driver database/sql para goose
)

//go:embed migrations/*.sql
var migrations embed.FS

// Up aplica todas las migraciones pendientes contra el DSN dado.
func Up(dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration db: %w", err)
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
