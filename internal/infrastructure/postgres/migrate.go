package postgres

import (
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"

	// Blank imports: registran el driver postgres y la fuente file para golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations aplica las migraciones SQL pendientes del directorio
// indicado (formato golang-migrate: NNNN_nombre.up.sql / .down.sql).
// Una base ya al día no es error.
func RunMigrations(databaseURL, sourceDir string) error {
	if sourceDir == "" {
		sourceDir = "migrations"
	}
	m, err := migrate.New("file://"+sourceDir, databaseURL)
	if err != nil {
		return fmt.Errorf("abrir migraciones: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}
