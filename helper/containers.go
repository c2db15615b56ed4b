package helper

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDatabase = "database"
	testUsername = "user"
	testPassword = "password"
)

// MustStartPostgresContainer starts a disposable Postgres container for
// integration tests and examples. It returns the teardown function and the
// host port the container listens on.
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:17-alpine",
		postgres.WithDatabase(testDatabase),
		postgres.WithUsername(testUsername),
		postgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, "", err
	}

	return dbContainer.Terminate, dbPort.Port(), nil
}

// SetTestDatabaseConfigEnvs points the HERITAGE_DB_* environment variables at
// the test container started by MustStartPostgresContainer.
func SetTestDatabaseConfigEnvs(t *testing.T, dbPort string) {
	t.Setenv("HERITAGE_DB_DRIVER", DriverPostgres)
	t.Setenv("HERITAGE_DB_HOST", "localhost")
	t.Setenv("HERITAGE_DB_PORT", dbPort)
	t.Setenv("HERITAGE_DB_DATABASE", testDatabase)
	t.Setenv("HERITAGE_DB_USERNAME", testUsername)
	t.Setenv("HERITAGE_DB_PASSWORD", testPassword)
	t.Setenv("HERITAGE_DB_SCHEMA", "public")
	t.Setenv("HERITAGE_DB_SSLMODE", "disable")
}
