package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. GTASK_DATABASE_URL for database.url.
const EnvPrefix = "GTASK"

// Flag names understood by LoadWithFlags.
const (
	FlagConfigFile = "config"
	FlagPort       = "port"
	FlagLogLevel   = "log-level"
)

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	FlagPort:     "server.port",
	FlagLogLevel: "server.log_level",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfigFile, "", "path to a YAML configuration file")
	fs.Int(FlagPort, 0, "HTTP listen port (overrides server.port)")
	fs.String(FlagLogLevel, "", "log level: debug, info, warn or error")
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags behaves like Load but lets flags that were explicitly set on
// the command line override every other source.
func LoadWithFlags(flags *pflag.FlagSet) (*Config, error) {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, flags); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_allowed_origins", []string{})

	// Registered so AutomaticEnv can resolve them during Unmarshal.
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("auth.token_lifetime", 48*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("guest.ttl", 24*time.Hour)
	v.SetDefault("guest.cleanup_enabled", true)
	v.SetDefault("guest.cleanup_schedule", "@every 1h")
}

// readConfigFile reads an explicit config file when one is named by flag or
// GTASK_CONFIG_FILE, and otherwise an optional ./config.yaml.
func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	path := v.GetString("config_file")
	if flags != nil {
		if f := flags.Lookup(FlagConfigFile); f != nil && f.Value.String() != "" {
			path = f.Value.String()
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}
