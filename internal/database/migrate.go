package database

import (
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"foodgram/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date. PostgreSQL runs the versioned SQL
// migrations; SQLite (dev and tests) uses AutoMigrate over the models.
func Migrate(db *gorm.DB, dsn string) error {
	if IsPostgres(dsn) {
		return migratePostgres(dsn)
	}
	return AutoMigrate(db)
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func migratePostgres(databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Println("migrations: database is up to date")
		return nil
	case err != nil:
		return fmt.Errorf("apply migrations: %w", err)
	}
	log.Println("migrations: applied")
	return nil
}
