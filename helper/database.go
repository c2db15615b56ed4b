package helper

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"  // Postgres driver
	_ "modernc.org/sqlite" // SQLite driver
)

// Supported database drivers for the process store.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfiguration holds the connection settings for the process store.
// Path is only used by the sqlite driver, the remaining connection fields
// only by postgres.
type DatabaseConfiguration struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// NewDatabaseConfiguration creates a database configuration from the
// HERITAGE_DB_* environment variables. The driver defaults to sqlite with an
// in-memory database, so a zero-configuration start always works.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	config := &DatabaseConfiguration{
		Driver:   envOr("HERITAGE_DB_DRIVER", DriverSQLite),
		Path:     envOr("HERITAGE_DB_PATH", ":memory:"),
		Host:     os.Getenv("HERITAGE_DB_HOST"),
		Port:     os.Getenv("HERITAGE_DB_PORT"),
		Database: os.Getenv("HERITAGE_DB_DATABASE"),
		Username: os.Getenv("HERITAGE_DB_USERNAME"),
		Password: os.Getenv("HERITAGE_DB_PASSWORD"),
		Schema:   envOr("HERITAGE_DB_SCHEMA", "public"),
		SSLMode:  envOr("HERITAGE_DB_SSLMODE", "disable"),
	}

	switch config.Driver {
	case DriverSQLite:
		if config.Path == "" {
			return nil, NewError("database configuration validation", fmt.Errorf("sqlite driver requires HERITAGE_DB_PATH"))
		}
	case DriverPostgres:
		if config.Host == "" || config.Port == "" || config.Database == "" {
			return nil, NewError("database configuration validation", fmt.Errorf("postgres driver requires HERITAGE_DB_HOST, HERITAGE_DB_PORT and HERITAGE_DB_DATABASE"))
		}
	default:
		return nil, NewError("database configuration validation", fmt.Errorf("unsupported driver %q", config.Driver))
	}

	return config, nil
}

// DataSourceName returns the driver specific connection string.
func (c *DatabaseConfiguration) DataSourceName() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode, c.Schema,
	)
}

// Database bundles an open connection with the logger shared by all handlers
// using it.
type Database struct {
	Name     string
	Instance *sql.DB
	Driver   string
	Logger   *slog.Logger
}

// NewDatabase opens the configured database and verifies the connection.
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	db, err := sql.Open(config.Driver, config.DataSourceName())
	if err != nil {
		log.Panicf("error opening %s database: %v", config.Driver, err)
	}

	// An in-memory sqlite database exists per connection, so the pool must
	// not open a second one.
	if config.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Panicf("error connecting to %s database: %v", config.Driver, err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("driver", config.Driver))

	return &Database{
		Name:     name,
		Instance: db,
		Driver:   config.Driver,
		Logger:   logger,
	}
}

// NewTestDatabase opens a database for tests with a quiet logger.
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	logger := slog.New(NewPrettyHandler(os.Stdout, PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelWarn},
	}))
	return NewDatabase("test", config, logger)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
