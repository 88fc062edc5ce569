package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultSQLitePath = "data.db"
)

// Config selects the relational backend.
type Config struct {
	// Driver is "postgres" or "sqlite". Empty picks postgres when DSN is set, sqlite otherwise.
	Driver     string
	DSN        string
	SQLitePath string
}

// EffectiveDriver resolves the driver that Open will use.
func (c Config) EffectiveDriver() string {
	driver := strings.ToLower(strings.TrimSpace(c.Driver))
	switch driver {
	case "", "auto":
		if strings.TrimSpace(c.DSN) != "" {
			return DriverPostgres
		}
		return DriverSQLite
	case "postgresql", "pg":
		return DriverPostgres
	case "sqlite3":
		return DriverSQLite
	}
	return driver
}

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}
	return verify(ctx, db)
}

// ConnectSQLite opens the SQLite file at path with foreign keys enforced.
func ConnectSQLite(ctx context.Context, path string) (*gorm.DB, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultSQLitePath
	}
	db, err := gorm.Open(sqlite.Open(SQLiteDSN(path)), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	sqlDB.SetMaxOpenConns(1)
	return verify(ctx, db)
}

// SQLiteDSN appends the pragmas the catalog relies on.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Open dials the configured backend and returns the DB plus a cleanup function.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	var (
		db  *gorm.DB
		err error
	)
	driver := cfg.EffectiveDriver()
	switch driver {
	case DriverPostgres:
		db, err = Connect(ctx, cfg.DSN)
	case DriverSQLite:
		db, err = ConnectSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, func() {}, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, func() {}, fmt.Errorf("connect %s: %w", driver, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, func() {}, err
	}
	logger.Info("database connection established", slog.String("driver", driver))
	return db, func() { _ = sqlDB.Close() }, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

func verify(ctx context.Context, db *gorm.DB) (*gorm.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}
