package migrate

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	authModel "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
	catalogModel "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/model"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/config"
	migrationsFS "github.com/Miraines/MoonyAndStarry/menu-service/scripts/db/migrations"
)

// Up brings the schema to the latest version. Postgres uses the embedded SQL
// migrations; sqlite is only used for development and is auto-migrated.
func Up(db *gorm.DB, driver string) error {
	switch driver {
	case config.DriverSQLite:
		return db.AutoMigrate(&authModel.User{}, &catalogModel.Product{}, &catalogModel.ChangeLogEntry{})
	case config.DriverPostgres:
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return upPostgres(sqlDB)
	default:
		return fmt.Errorf("migrate: unsupported driver %q", driver)
	}
}

func upPostgres(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrationsFS.FS, ".")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
