package database

import (
	"fmt"
	"log/slog"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/config"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to Postgres or, for local development and tests, to SQLite.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if driver == config.DriverSQLite {
		// An in-memory SQLite database lives in a single connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Init opens the configured database, migrates it and installs it as DB.
func Init(cfg *config.Config) error {
	db, err := Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}

	if err := Migrate(db); err != nil {
		return err
	}

	if cfg.SeedDemoData {
		if err := Seed(db); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	DB = db
	slog.Info("database ready", "driver", cfg.DatabaseDriver, "seeded", cfg.SeedDemoData)
	return nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.AuditLog{},
		&models.MenuItem{},
		&models.Reservation{},
		&models.Order{},
		&models.Cart{},
		&models.Member{},
		&models.Event{},
		&models.Review{},
		&models.SocialPost{},
		&models.Celebrity{},
		&models.Award{},
		&models.PressFeature{},
		&models.Supplier{},
		&models.WeatherSuggestion{},
		&models.ContactMessage{},
		&models.Settings{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
