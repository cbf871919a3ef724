package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rezkam/todos/internal/env"
)

// EnvSelector names the variable that selects which dotenv file is loaded
// (".env.<value>", falling back to ".env").
const EnvSelector = "TODOS_ENV"

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Env             string        `env:"TODOS_ENV" default:"local"`
	ShutdownTimeout time.Duration `env:"TODOS_SHUTDOWN_TIMEOUT" default:"10s"`

	Database      DatabaseConfig
	HTTP          HTTPConfig
	CORS          CORSConfig
	Observability ObservabilityConfig
}

// HTTPConfig holds HTTP server configuration.
// Zero durations and sizes are replaced by the transport defaults.
type HTTPConfig struct {
	Host              string        `env:"TODOS_HTTP_HOST"`
	Port              string        `env:"TODOS_HTTP_PORT" default:"5001"`
	ReadTimeout       time.Duration `env:"TODOS_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"TODOS_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"TODOS_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"TODOS_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"TODOS_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"TODOS_HTTP_MAX_BODY_BYTES"`
}

// CORSConfig holds the cross-origin policy for browser clients.
type CORSConfig struct {
	AllowedOrigins   []string      `env:"TODOS_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:3001"`
	AllowCredentials bool          `env:"TODOS_CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `env:"TODOS_CORS_MAX_AGE" default:"5m"`
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"TODOS_OTEL_ENABLED" default:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME" default:"todos"`
}

// LoadServerConfig loads and validates server configuration from environment.
// Dotenv files in the working directory are read first; real environment
// variables always take precedence over them.
func LoadServerConfig() (*ServerConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &ServerConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}

// SeedConfig holds configuration for the seed command.
type SeedConfig struct {
	Database DatabaseConfig
}

// LoadSeedConfig loads and validates seed command configuration from environment.
func LoadSeedConfig() (*SeedConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &SeedConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load seed config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv() error {
	name := os.Getenv(EnvSelector)
	if name == "" {
		name = "local"
	}
	if _, err := env.LoadDotEnv("", name); err != nil {
		return fmt.Errorf("failed to load dotenv file: %w", err)
	}
	return nil
}
