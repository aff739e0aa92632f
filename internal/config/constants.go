package config

import "time"

// Environment variable names
const (
	EnvPort              = "PORT"
	EnvAPIKey            = "API_KEY"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
	EnvServiceName       = "SERVICE_NAME"
	EnvVersion           = "VERSION"
	EnvEnvironment       = "ENVIRONMENT"
	EnvDBUser            = "DB_USER"
	EnvDBPassword        = "DB_PASSWORD"
	EnvDBHost            = "DB_HOST"
	EnvDBPort            = "DB_PORT"
	EnvDBName            = "DB_NAME"
	EnvDBMaxConns        = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime = "DB_MAX_CONN_LIFETIME"
	EnvSpinRateLimit     = "SPIN_RATE_LIMIT"
	EnvSpinRateWindow    = "SPIN_RATE_WINDOW"
	EnvSchemaVersion     = "ENV_SCHEMA_VERSION"
)

// Default values
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceName = "feedspin"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"
	DefaultDBUser      = "postgres"
	DefaultDBPassword  = "postgres"
	DefaultDBHost      = "localhost"
	DefaultDBPort      = "5432"
	DefaultDBName      = "feedspin"
)

// Database pool and rate limit defaults
const (
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultSpinRateLimit     = 10
	DefaultSpinRateWindow    = time.Minute
)
