// This file starts database containers for the integration tests and the
// cmd/testcontainers executable. Expects DB_* environment variables, loaded
// from .env files when run standalone.

package testsupport

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/publishing-house/internal/config"
	"github.com/localnerve/publishing-house/internal/logger"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Default images per DB_TYPE, overridden by DB_IMAGE.
var defaultImages = map[string]string{
	"postgres": "postgres:16-alpine",
	"mariadb":  "mariadb:11",
	"mysql":    "mysql:8.4",
}

var defaultPorts = map[string]string{
	"postgres": "5432",
	"mariadb":  "3306",
	"mysql":    "3306",
}

// TestContainers holds the containers started for a test run
type TestContainers struct {
	Network     *testcontainers.DockerNetwork
	DBContainer testcontainers.Container
	// Config points at the database through its mapped host port.
	Config *config.Config
}

// Terminate stops every started container
func (tc *TestContainers) Terminate(t testing.TB) {
	ctx := context.Background()
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// CreateDatabaseContainer starts the database named by DB_TYPE and returns
// a configuration pointing at it. t may be nil for standalone use.
func CreateDatabaseContainer(t testing.TB) (*TestContainers, error) {
	ctx := context.Background()
	tc := &TestContainers{}

	dbType := getEnv("DB_TYPE", "postgres")
	image := getEnv("DB_IMAGE", defaultImages[dbType])
	if image == "" {
		return nil, fmt.Errorf("no container image for DB_TYPE %s", dbType)
	}
	database := getEnv("DB_DATABASE", "publishing")
	user := getEnv("DB_USER", "publishing")
	password := getEnv("DB_PASSWORD", "publishing")

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create network: %w", err)
	}
	tc.Network = nw

	tcpDbPort, err := nat.NewPort("tcp", getEnv("DB_PORT", defaultPorts[dbType]))
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("create DB port: %w", err)
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpDbPort)},
			Env:          dbInitEnv(dbType, database, user, password),
			WaitingFor:   waitForDB(dbType, tcpDbPort),
			Networks:     []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {"database"},
			},
		},
		Started: true,
	})
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("start database: %w", err)
	}
	tc.DBContainer = dbContainer

	host, err := dbContainer.Host(ctx)
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("database host: %w", err)
	}
	port, err := dbContainer.MappedPort(ctx, tcpDbPort)
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("database port: %w", err)
	}

	tc.Config = &config.Config{
		Port:              getEnv("PORT", "3000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBType:            dbType,
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        database,
		DBUser:            user,
		DBPassword:        password,
		DBConnectionLimit: 5,
		AutoMigrate:       true,
	}
	logMessage(t, "DB_HOST=%s DB_PORT=%s", host, port.Port())
	return tc, nil
}

func dbInitEnv(dbType, database, user, password string) map[string]string {
	switch dbType {
	case "mariadb", "mysql":
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": getEnv("DB_ROOT_PASSWORD", password),
			"MYSQL_DATABASE":      database,
			"MYSQL_USER":          user,
			"MYSQL_PASSWORD":      password,
		}
	}
	return map[string]string{
		"POSTGRES_PASSWORD": password,
		"POSTGRES_USER":     user,
		"POSTGRES_DB":       database,
	}
}

func waitForDB(dbType string, port nat.Port) wait.Strategy {
	listening := wait.ForListeningPort(port).WithStartupTimeout(60 * time.Second)
	if dbType == "postgres" {
		// Postgres restarts once after running its init scripts.
		return wait.ForAll(
			listening,
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		)
	}
	return listening
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func logMessage(t testing.TB, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
		return
	}
	logger.Default().Infof(format, args...)
}
