// Package db opens the gorm connection used by the SQL document store.
package db

import (
	"fmt"
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// DefaultSQLitePath is used when the sqlite driver is selected without DB_DSN.
	DefaultSQLitePath = "fund_backend.db"
)

// Config holds the SQL connection settings.
type Config struct {
	Driver   string // sqlite | postgres
	DSN      string // takes precedence over the discrete fields below
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string

	RunMigrations bool
}

// LoadConfigFromEnv reads the database settings from environment variables.
func LoadConfigFromEnv() Config {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = DriverSQLite
	}
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}
	return Config{
		Driver:        driver,
		DSN:           os.Getenv("DB_DSN"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		Host:          os.Getenv("DB_HOST"),
		Port:          os.Getenv("DB_PORT"),
		SSLMode:       sslmode,
		RunMigrations: os.Getenv("RUN_MIGRATIONS") != "false",
	}
}

// BuildDSN returns the connection string for cfg.Driver.
func BuildDSN(cfg Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	switch cfg.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	default:
		return DefaultSQLitePath
	}
}

// Open connects to the configured database and migrates the documents table.
// No retry is attempted; a failed connection is returned to the caller.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	dsn := BuildDSN(cfg)
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite, "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		slog.Error("DB connection failed", "driver", cfg.Driver, "error", err)
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(&DocumentModel{}); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	slog.Info("DB connection successful", "driver", cfg.Driver)
	return db, nil
}
