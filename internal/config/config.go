package config

import "time"

// Data sources understood by the services.
const (
	SourcePostgres = "postgres"
	SourceStatic   = "static"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Peers    PeersConfig    `mapstructure:"peers"`
	Data     DataConfig     `mapstructure:"data"`
	API      APIConfig      `mapstructure:"api"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// DatabaseConfig contains the connection string and pool settings.
// URL is only required when Data.Source is postgres.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"omitempty,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout" validate:"gt=0"`
}

// PeersConfig locates sibling services used for composed views.
type PeersConfig struct {
	UsersAPIURL string        `mapstructure:"users_api_url" validate:"omitempty,url"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// DataConfig selects where entity data comes from.
type DataConfig struct {
	Source       string `mapstructure:"source" validate:"required,oneof=postgres static"`
	UsersFile    string `mapstructure:"users_file" validate:"omitempty,file"`
	ProductsFile string `mapstructure:"products_file" validate:"omitempty,file"`
}

// APIConfig tunes HTTP error mapping.
type APIConfig struct {
	// StrictConflicts maps unique violations to 409 instead of 500.
	StrictConflicts bool `mapstructure:"strict_conflicts"`
}

// Defaults are the per-service values applied before file and environment.
type Defaults struct {
	ServiceName string
	Port        int
	Source      string
}
