package config

import (
	"fmt"
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Supported DB_TYPE values
var dbTypes = []interface{}{"postgres", "postgresql", "mysql", "mariadb", "sqlite", "sqlserver", "mssql"}

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port     string
	LogLevel string

	// Database configuration
	DBType            string // postgres, mysql, mariadb, sqlite, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBTestDatabase    string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	TestMode          bool
	AutoMigrate       bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBType:            getEnv("DB_TYPE", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBTestDatabase:    getEnv("DB_TEST_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		TestMode:          getEnvAsBool("TEST_MODE", false),
		AutoMigrate:       getEnvAsBool("AUTO_MIGRATE", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	networked := c.DBType != "sqlite"
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.DBType, validation.Required, validation.In(dbTypes...)),
		validation.Field(&c.DBDatabase, validation.Required.Error("DB_DATABASE is required")),
		validation.Field(&c.DBTestDatabase,
			validation.When(c.TestMode, validation.Required.Error("DB_TEST_DATABASE is required in test mode"))),
		validation.Field(&c.DBHost, validation.When(networked, validation.Required)),
		validation.Field(&c.DBPort, validation.When(networked, validation.Required, is.Port)),
		validation.Field(&c.DBUser, validation.When(networked, validation.Required.Error("DB_USER is required"))),
		validation.Field(&c.DBConnectionLimit, validation.Min(1)),
	)
}

// Database returns the database name in use, honoring test mode
func (c *Config) Database() string {
	if c.TestMode {
		return c.DBTestDatabase
	}
	return c.DBDatabase
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
