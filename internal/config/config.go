// Package config handles loading and validating application configuration.
//
// The config file path comes from (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// A .env file in the working directory, if present, is loaded into the
// process environment first, so every env:"..." override below can also
// live there.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

// Supported values for Storage.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file and can be overridden by the
// corresponding environment variable.
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"required,oneof=dev staging prod"`

	Storage    Storage    `yaml:"storage"`
	HTTPServer HTTPServer `yaml:"http_server"`
}

// Storage selects and tunes the persona store.
type Storage struct {
	Driver      string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite" validate:"required,oneof=sqlite postgres"`
	SQLitePath  string `yaml:"sqlite_path" env:"STORAGE_SQLITE_PATH" validate:"required_if=Driver sqlite"`
	PostgresDSN string `yaml:"postgres_dsn" env:"STORAGE_POSTGRES_DSN" validate:"required_if=Driver postgres"`

	// Pool limits. Zero leaves the driver default in place.
	MaxOpenConns    int           `yaml:"max_open_conns" env:"STORAGE_MAX_OPEN_CONNS" env-default:"10" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"STORAGE_MAX_IDLE_CONNS" env-default:"5" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"STORAGE_CONN_MAX_LIFETIME" env-default:"30m" validate:"gte=0"`
}

// HTTPServer holds settings for the HTTP listener.
type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:3000" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Load reads the YAML file at path, applies env overrides and defaults,
// and validates the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid config: field %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad resolves the config path, loads it and exits the process on
// any failure. If it returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal().Msg("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	return cfg
}
