package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Guest    GuestConfig    `mapstructure:"guest"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int           `mapstructure:"port"                 validate:"required,gt=0,lt=65536"`
	LogLevel           string        `mapstructure:"log_level"            validate:"required,oneof=debug info warn error"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"     validate:"required,gt=0"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"               validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetime is the fixed distance between a token's iat and exp.
	TokenLifetime time.Duration `mapstructure:"token_lifetime" validate:"required,gt=0"`

	// BcryptCost is the work factor used for password hashing.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// GuestConfig controls guest account expiry and the cleanup sweep.
type GuestConfig struct {
	TTL             time.Duration `mapstructure:"ttl"              validate:"required,gt=0"`
	CleanupEnabled  bool          `mapstructure:"cleanup_enabled"`
	CleanupSchedule string        `mapstructure:"cleanup_schedule" validate:"required_if=CleanupEnabled true"`
}
