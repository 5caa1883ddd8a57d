package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variable names the
// services have always been deployed with.
var envBindings = map[string]string{
	"server.name":                "SERVICE_NAME",
	"server.port":                "PORT",
	"server.log_level":           "LOG_LEVEL",
	"server.shutdown_timeout":    "SHUTDOWN_TIMEOUT",
	"server.cors_origins":        "CORS_ORIGINS",
	"database.url":               "DATABASE_URL",
	"database.max_open_conns":    "DB_MAX_OPEN_CONNS",
	"database.max_idle_conns":    "DB_MAX_IDLE_CONNS",
	"database.conn_max_lifetime": "DB_CONN_MAX_LIFETIME",
	"database.connect_timeout":   "DB_CONNECT_TIMEOUT",
	"peers.users_api_url":        "USERS_API_URL",
	"peers.timeout":              "USERS_API_TIMEOUT",
	"data.source":                "DATA_SOURCE",
	"data.users_file":            "USERS_DATA_FILE",
	"data.products_file":         "PRODUCTS_DATA_FILE",
	"api.strict_conflicts":       "STRICT_CONFLICTS",
}

// ErrDatabaseURLRequired is returned when a postgres-backed service has no DATABASE_URL.
var ErrDatabaseURLRequired = errors.New("database url is required when data source is postgres")

// Load configuration from defaults, an optional YAML file named by CONFIG_FILE,
// and environment variables. Environment variables take precedence over values
// from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(d Defaults) (*Config, error) {
	v := viper.New()

	setDefaults(v, d)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.BindEnv("config_file", "CONFIG_FILE"); err != nil {
		return nil, fmt.Errorf("failed to bind CONFIG_FILE: %w", err)
	}
	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Server.CORSOrigins = splitList(cfg.Server.CORSOrigins)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct constraints and cross-field rules.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if cfg.Data.Source == SourcePostgres && cfg.Database.URL == "" {
		return fmt.Errorf("configuration validation failed: %w", ErrDatabaseURLRequired)
	}
	return nil
}

func setDefaults(v *viper.Viper, d Defaults) {
	source := d.Source
	if source == "" {
		source = SourcePostgres
	}

	v.SetDefault("server.name", d.ServiceName)
	v.SetDefault("server.port", d.Port)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.connect_timeout", "5s")
	v.SetDefault("peers.users_api_url", "http://users-api:4001")
	v.SetDefault("peers.timeout", "2s")
	v.SetDefault("data.source", source)
	v.SetDefault("data.users_file", "")
	v.SetDefault("data.products_file", "")
	v.SetDefault("api.strict_conflicts", false)
}

// splitList accepts both YAML lists and a comma separated environment value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
